package svm_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/foundry-rs/compilers/internal/adapters/svm"
	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports/mocks"
)

func installBinary(t *testing.T, dir string, lang domain.Language, version, name string) {
	t.Helper()
	path := filepath.Join(dir, string(lang), version, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return log
}

func TestInstalledSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	installBinary(t, dir, domain.LangSolidity, "0.8.20", "solc")
	installBinary(t, dir, domain.LangSolidity, "0.7.6", "solc")
	// Version directory without a binary does not count as installed.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "solidity", "0.8.21"), 0o755))
	// Junk directory names are skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "solidity", "latest"), 0o755))

	p := svm.NewProvider(dir, nil, quietLogger(t))
	installed, err := p.Installed(t.Context(), domain.LangSolidity)
	require.NoError(t, err)

	got := make([]string, len(installed))
	for i, v := range installed {
		got[i] = v.String()
	}
	assert.Equal(t, []string{"0.7.6", "0.8.20"}, got)
}

func TestInstalledEmptyWhenDirMissing(t *testing.T) {
	p := svm.NewProvider(filepath.Join(t.TempDir(), "nope"), nil, quietLogger(t))
	installed, err := p.Installed(t.Context(), domain.LangSolidity)
	require.NoError(t, err)
	assert.Empty(t, installed)
}

func TestAvailableIncludesCatalogAndInstalled(t *testing.T) {
	dir := t.TempDir()
	// A locally built version absent from the catalog.
	installBinary(t, dir, domain.LangSolidity, "0.8.99", "solc")

	p := svm.NewProvider(dir, nil, quietLogger(t))
	available, err := p.Available(t.Context(), domain.LangSolidity)
	require.NoError(t, err)

	var strs []string
	for _, v := range available {
		strs = append(strs, v.String())
	}
	assert.Contains(t, strs, "0.8.20")
	assert.Contains(t, strs, "0.8.99")
	assert.IsIncreasing(t, strs)
}

func TestBinaryPath(t *testing.T) {
	dir := t.TempDir()
	installBinary(t, dir, domain.LangVyper, "0.3.10", "vyper")

	p := svm.NewProvider(dir, nil, quietLogger(t))
	path, err := p.BinaryPath(domain.LangVyper, semver.MustParse("0.3.10"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "vyper", "0.3.10", "vyper"), path)

	_, err = p.BinaryPath(domain.LangVyper, semver.MustParse("0.4.0"))
	require.ErrorIs(t, err, domain.ErrVersionNotInstalled)
}

func TestInstallWithoutInstaller(t *testing.T) {
	p := svm.NewProvider(t.TempDir(), nil, quietLogger(t))
	err := p.Install(t.Context(), domain.LangSolidity, semver.MustParse("0.8.20"))
	require.ErrorIs(t, err, domain.ErrInstallerUnavailable)
}

func TestInstallRunsConfiguredCommand(t *testing.T) {
	dir := t.TempDir()
	// An installer that drops the expected binary into its destination.
	script := filepath.Join(dir, "installer.sh")
	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\ntouch \"$3/solc\"\n"), 0o755))

	p := svm.NewProvider(dir, []string{script}, quietLogger(t))
	require.NoError(t, p.Install(t.Context(), domain.LangSolidity, semver.MustParse("0.8.20")))

	_, err := p.BinaryPath(domain.LangSolidity, semver.MustParse("0.8.20"))
	require.NoError(t, err)
}
