package ports

import "github.com/foundry-rs/compilers/internal/core/domain"

// ConfigLoader loads the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration rooted at the given working directory.
	Load(cwd string) (*domain.ProjectConfig, error)
}
