package config

import "github.com/foundry-rs/compilers/internal/core/domain"

// Projectfile represents the structure of the solbuild.yaml configuration
// file.
type Projectfile struct {
	Sources   string `yaml:"sources"`
	Artifacts string `yaml:"artifacts"`
	Cache     string `yaml:"cache"`

	// Remappings are written as "prefix=target" strings, one per rule,
	// order-significant.
	Remappings []string `yaml:"remappings"`

	Settings    domain.Settings `yaml:"settings"`
	Parallelism int             `yaml:"parallelism"`
}
