package domain

import (
	"slices"
	"time"
)

// CacheEntry is the durable per-file record written after a successful
// compile of the owning job. It is read, never mutated, during dirty-set
// computation.
type CacheEntry struct {
	Path                string            `json:"path"`
	Language            Language          `json:"language"`
	ContentHash         string            `json:"contentHash"`
	Imports             []string          `json:"imports,omitempty"`
	SettingsFingerprint string            `json:"settingsFingerprint"`
	CompilerVersion     string            `json:"compilerVersion"`
	Retained            []OutputCategory  `json:"retained,omitempty"`
	Artifacts           map[string]string `json:"artifacts,omitempty"`
	Timestamp           time.Time         `json:"timestamp,omitzero"`
}

// Retains reports whether every requested output category was retained when
// this entry was produced. A false result means the caller is escalating the
// requested outputs and the file must recompile even though nothing else
// changed.
func (e CacheEntry) Retains(requested []OutputCategory) bool {
	for _, cat := range requested {
		if !slices.Contains(e.Retained, cat) {
			return false
		}
	}
	return true
}
