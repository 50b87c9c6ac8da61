// Package config provides the configuration loader for solbuild.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

// Filename is the project configuration file searched for upward from the
// working directory.
const Filename = "solbuild.yaml"

var _ ports.ConfigLoader = (*FileLoader)(nil)

// FileLoader implements ports.ConfigLoader using a YAML file.
type FileLoader struct {
	log ports.Logger
}

// NewLoader creates a new FileLoader.
func NewLoader(log ports.Logger) *FileLoader {
	return &FileLoader{log: log}
}

// Load walks upward from cwd until it finds a solbuild.yaml, parses it and
// resolves the project configuration. The directory holding the file becomes
// the project root.
func (l *FileLoader) Load(cwd string) (*domain.ProjectConfig, error) {
	path, root, err := discover(cwd)
	if err != nil {
		return nil, err
	}
	l.log.Info(fmt.Sprintf("using configuration %s", path))
	return Load(path, root)
}

// Load reads one configuration file and resolves it against the given root.
func Load(path, root string) (*domain.ProjectConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Projectfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	remappings, err := parseRemappings(file.Remappings)
	if err != nil {
		return nil, err
	}

	cfg := &domain.ProjectConfig{
		Root:         root,
		SourceDir:    defaultString(file.Sources, "src"),
		ArtifactsDir: defaultString(file.Artifacts, "out"),
		CachePath:    defaultString(file.Cache, filepath.Join("cache", "solbuild-cache.json")),
		Remappings:   remappings,
		Settings:     file.Settings,
		Parallelism:  file.Parallelism,
	}
	if !filepath.IsAbs(cfg.CachePath) {
		cfg.CachePath = filepath.Join(root, cfg.CachePath)
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = runtime.NumCPU()
	}
	return cfg, nil
}

func discover(cwd string) (path, root string, err error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", "", zerr.Wrap(err, "failed to resolve working directory")
	}
	for {
		candidate := filepath.Join(dir, Filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

func parseRemappings(raw []string) ([]domain.Remapping, error) {
	remappings := make([]domain.Remapping, 0, len(raw))
	for _, rule := range raw {
		prefix, target, ok := strings.Cut(rule, "=")
		if !ok || prefix == "" {
			return nil, zerr.With(zerr.New("malformed remapping, want prefix=target"), "remapping", rule)
		}
		remappings = append(remappings, domain.Remapping{Prefix: prefix, Target: target})
	}
	return remappings, nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
