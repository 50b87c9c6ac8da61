// Package domain contains the core domain models for the compilation
// pipeline: source files, the import graph, version constraints, compile
// settings, cache entries, jobs and artifacts.
package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// Language identifies the contract language a source file is written in.
// The set of languages is fixed; each one maps to a compiler executor.
type Language string

const (
	// LangSolidity covers .sol and .yul sources compiled by solc.
	LangSolidity Language = "solidity"
	// LangVyper covers .vy and .vyi sources compiled by vyper.
	LangVyper Language = "vyper"
)

// DetectLanguage maps a file path to its contract language by extension.
func DetectLanguage(path string) (Language, error) {
	switch filepath.Ext(path) {
	case ".sol", ".yul":
		return LangSolidity, nil
	case ".vy", ".vyi":
		return LangVyper, nil
	default:
		return "", zerr.With(ErrUnknownLanguage, "path", path)
	}
}

// SourceFile is one resolved source file. It is created during import
// resolution and is immutable for the remainder of the run.
type SourceFile struct {
	// Path is the canonical (symlink-free, absolute) path of the file.
	Path InternedString

	Language Language

	// Content is the raw file content as read at resolution time.
	Content string

	// ContentHash is the xxhash of Content, rendered as %016x.
	ContentHash string

	// Imports holds the canonical paths of the file's resolved import
	// targets, in declaration order, each recorded once.
	Imports []InternedString

	// Pragmas holds the raw version constraint strings as written in the
	// file, e.g. "^0.8.0" or ">=0.8.0 <0.9.0".
	Pragmas []string

	// Contracts holds the names of contracts declared in the file.
	Contracts []string

	// License is the SPDX license identifier, if the file declares one.
	License string
}
