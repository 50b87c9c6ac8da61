// Package sink writes merged artifacts to disk, one JSON file per contract,
// grouped by the source file's path relative to the project root.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

var _ ports.ArtifactSink = (*Sink)(nil)

// Sink implements ports.ArtifactSink under a single output directory.
type Sink struct {
	dir  string
	root string
}

// NewSink creates a Sink writing under dir for sources relative to root.
func NewSink(dir, root string) *Sink {
	return &Sink{dir: filepath.Clean(dir), root: filepath.Clean(root)}
}

// Write persists every artifact in the set as
// <dir>/<source path relative to root>/<contract>.json and returns the
// written path per artifact id. Keying by the full relative source path
// keeps same-named sources in different directories apart.
func (s *Sink) Write(ctx context.Context, set *domain.ArtifactSet) (map[domain.ArtifactID]string, error) {
	refs := make(map[domain.ArtifactID]string, set.Len())
	for _, id := range set.IDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		artifact, _ := set.Get(id)

		path := filepath.Join(s.dir, s.sourceDir(id.Source), id.Contract+".json")
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, zerr.Wrap(err, "failed to create artifact directory")
		}

		data, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to marshal artifact"), "artifact", id.String())
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", path)
		}
		refs[id] = path
	}
	return refs, nil
}

// sourceDir maps one source path to its artifact subdirectory. Sources
// inside the project root keep their relative path; sources outside it
// (symlinked libraries) get a stable digest-suffixed directory so distinct
// origins never collide.
func (s *Sink) sourceDir(source string) string {
	rel, err := filepath.Rel(s.root, source)
	if err == nil && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel) {
		return rel
	}
	origin := filepath.Dir(source)
	return filepath.Join("_external",
		fmt.Sprintf("%s-%016x", filepath.Base(source), xxhash.Sum64String(origin)))
}

// Read loads one previously written artifact.
func (s *Sink) Read(path string) (domain.ContractArtifact, error) {
	//nolint:gosec // Path comes from the cache store
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ContractArtifact{}, zerr.With(zerr.Wrap(err, "failed to read artifact"), "path", path)
	}
	var artifact domain.ContractArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return domain.ContractArtifact{}, zerr.With(zerr.Wrap(err, "failed to parse artifact"), "path", path)
	}
	return artifact, nil
}
