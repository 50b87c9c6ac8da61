// Package fs provides the file system adapters: contract source discovery,
// content hashing and artifact verification.
package fs

import (
	"io/fs"
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

var _ ports.SourceFinder = (*Walker)(nil)

// Walker discovers contract sources under a directory tree.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// FindSources walks root and returns every contract source path, sorted.
// Hidden directories and node_modules are skipped.
func (w *Walker) FindSources(root string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, err := domain.DetectLanguage(path); err == nil {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to walk source tree"), "root", root)
	}
	slices.Sort(sources)
	return sources, nil
}

func skipDir(name string) bool {
	if name == "node_modules" {
		return true
	}
	return len(name) > 1 && name[0] == '.'
}
