// Package svm manages compiler toolchain versions on disk. Binaries live
// under <dir>/<language>/<version>/<binary>; installation is delegated to a
// configurable installer command.
package svm

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

var _ ports.VersionProvider = (*Provider)(nil)

// Provider implements ports.VersionProvider over a local directory tree.
type Provider struct {
	dir       string
	installer []string
	log       ports.Logger
}

// NewProvider creates a Provider rooted at dir. installer, when non-empty,
// is the command invoked to install a version; it receives the language,
// version and destination directory as trailing arguments.
func NewProvider(dir string, installer []string, log ports.Logger) *Provider {
	return &Provider{dir: filepath.Clean(dir), installer: installer, log: log}
}

// DefaultDir returns the conventional toolchain directory under the user's
// home.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".solbuild", "compilers")
	}
	return filepath.Join(home, ".solbuild", "compilers")
}

// Installed returns the versions present on disk for lang, sorted ascending.
func (p *Provider) Installed(ctx context.Context, lang domain.Language) ([]*semver.Version, error) {
	entries, err := os.ReadDir(filepath.Join(p.dir, string(lang)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read toolchain directory")
	}

	var versions []*semver.Version
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, err := semver.NewVersion(entry.Name())
		if err != nil {
			continue
		}
		if _, err := os.Stat(p.binaryPath(lang, v)); err != nil {
			continue
		}
		versions = append(versions, v)
	}
	slices.SortFunc(versions, func(a, b *semver.Version) int { return a.Compare(b) })
	return versions, nil
}

// Available returns the union of the known release catalog and whatever is
// already installed, sorted ascending.
func (p *Provider) Available(ctx context.Context, lang domain.Language) ([]*semver.Version, error) {
	installed, err := p.Installed(ctx, lang)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var versions []*semver.Version
	for _, v := range append(catalog(lang), installed...) {
		if _, ok := seen[v.String()]; ok {
			continue
		}
		seen[v.String()] = struct{}{}
		versions = append(versions, v)
	}
	slices.SortFunc(versions, func(a, b *semver.Version) int { return a.Compare(b) })
	return versions, nil
}

// Install runs the configured installer command for the given version.
func (p *Provider) Install(ctx context.Context, lang domain.Language, v *semver.Version) error {
	if len(p.installer) == 0 {
		return zerr.With(domain.ErrInstallerUnavailable, "version", v.String())
	}

	dest := filepath.Dir(p.binaryPath(lang, v))
	if err := os.MkdirAll(dest, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create toolchain directory")
	}

	p.log.Info(fmt.Sprintf("installing %s %s into %s", lang, v, dest))
	args := append(p.installer[1:], string(lang), v.String(), dest)
	cmd := exec.CommandContext(ctx, p.installer[0], args...) //nolint:gosec // installer is operator-configured
	if out, err := cmd.CombinedOutput(); err != nil {
		return zerr.With(zerr.Wrap(err, "installer failed"), "output", string(out))
	}

	if _, err := os.Stat(p.binaryPath(lang, v)); err != nil {
		return zerr.With(domain.ErrVersionNotInstalled, "version", v.String())
	}
	return nil
}

// BinaryPath returns the toolchain binary for an installed version.
func (p *Provider) BinaryPath(lang domain.Language, v *semver.Version) (string, error) {
	path := p.binaryPath(lang, v)
	if _, err := os.Stat(path); err != nil {
		return "", zerr.With(zerr.With(domain.ErrVersionNotInstalled, "version", v.String()), "path", path)
	}
	return path, nil
}

func (p *Provider) binaryPath(lang domain.Language, v *semver.Version) string {
	return filepath.Join(p.dir, string(lang), v.String(), binaryName(lang))
}

func binaryName(lang domain.Language) string {
	if lang == domain.LangVyper {
		return "vyper"
	}
	return "solc"
}
