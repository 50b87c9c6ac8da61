// Package resolver turns a set of entry sources into a dependency graph. It
// scans each file for imports, rewrites them through the project remappings,
// resolves them to canonical filesystem paths and recurses, tolerating import
// cycles.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

type Resolver struct {
	hasher ports.Hasher
}

func New(hasher ports.Hasher) *Resolver {
	return &Resolver{hasher: hasher}
}

// Resolve builds the dependency graph reachable from the entry paths.
// Graph membership is keyed by canonical path, so symlinked duplicates
// collapse to one node and cycles terminate: a file already in the graph is
// never re-scanned.
func (r *Resolver) Resolve(cfg *domain.ProjectConfig, entries []string) (*domain.DependencyGraph, error) {
	g := domain.NewDependencyGraph()
	for _, entry := range entries {
		if _, err := r.resolveFile(g, cfg, entry); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (r *Resolver) resolveFile(g *domain.DependencyGraph, cfg *domain.ProjectConfig, path string) (int, error) {
	canonical := canonicalize(path)
	key := domain.NewInternedString(canonical)
	if i, ok := g.Lookup(key); ok {
		return i, nil
	}

	lang, err := domain.DetectLanguage(canonical)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(canonical)
	if err != nil {
		return 0, zerr.Wrap(err, "read source")
	}
	content := string(data)
	scan := ScanSource(content, lang)

	file := domain.SourceFile{
		Path:        key,
		Language:    lang,
		Content:     content,
		ContentHash: r.hasher.HashContent(data),
		Pragmas:     scan.Pragmas,
		Contracts:   scan.Contracts,
		License:     scan.License,
	}
	// Register before descending into imports so cycles back to this file
	// short-circuit on the graph lookup above.
	idx := g.AddNode(file)

	dir := filepath.Dir(canonical)
	for _, imp := range scan.Imports {
		target, err := r.locate(cfg, lang, dir, imp)
		if err != nil {
			return 0, zerr.With(zerr.With(err, "importer", canonical), "import", imp)
		}
		child, err := r.resolveFile(g, cfg, target)
		if err != nil {
			return 0, err
		}
		g.AddEdge(idx, child)
	}

	return idx, nil
}

// locate maps one import string to an existing file. Relative imports resolve
// against the importing file's directory and bypass remappings; everything
// else is remapped first and probed under the project root and source
// directory.
func (r *Resolver) locate(cfg *domain.ProjectConfig, lang domain.Language, dir, imp string) (string, error) {
	var candidates []string
	switch lang {
	case domain.LangVyper:
		dirs := []string{dir, filepath.Join(cfg.Root, cfg.SourceDir)}
		if strings.HasPrefix(imp, "./") || strings.HasPrefix(imp, "../") {
			// Dotted relative imports are anchored to the importing file.
			dirs = dirs[:1]
		}
		for _, ext := range []string{".vy", ".vyi"} {
			for _, d := range dirs {
				candidates = append(candidates, filepath.Join(d, imp+ext))
			}
		}
	default:
		if strings.HasPrefix(imp, "./") || strings.HasPrefix(imp, "../") {
			candidates = append(candidates, filepath.Join(dir, imp))
		} else {
			remapped := ApplyRemappings(imp, cfg.Remappings)
			if filepath.IsAbs(remapped) {
				candidates = append(candidates, remapped)
			} else {
				candidates = append(candidates,
					filepath.Join(cfg.Root, remapped),
					filepath.Join(cfg.Root, cfg.SourceDir, remapped),
					filepath.Join(dir, remapped),
				)
			}
		}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", domain.ErrUnresolvedImport
}

// canonicalize makes a path absolute and follows symlinks so the same file
// reached by different spellings gets one graph node.
func canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
