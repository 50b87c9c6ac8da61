package ports

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

// VersionProvider reports which compiler versions the environment has and
// can request installation of a specific one. Downloading and unpacking
// binaries is the provider's concern, not the engine's.
//
//go:generate go run go.uber.org/mock/mockgen -source=versions.go -destination=mocks/mock_versions.go -package=mocks
type VersionProvider interface {
	// Installed returns the versions present on disk, sorted ascending.
	Installed(ctx context.Context, lang domain.Language) ([]*semver.Version, error)

	// Available returns every version the environment could make available,
	// installed or not, sorted ascending.
	Available(ctx context.Context, lang domain.Language) ([]*semver.Version, error)

	// Install makes the given version available locally.
	Install(ctx context.Context, lang domain.Language, v *semver.Version) error

	// BinaryPath returns the path of the toolchain binary for an installed
	// version. Returns domain.ErrVersionNotInstalled if it is absent.
	BinaryPath(lang domain.Language, v *semver.Version) (string, error)
}
