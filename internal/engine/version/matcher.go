// Package version selects one compiler version per import cluster by
// intersecting every member file's pragma constraints against the versions
// the environment has or can install.
package version

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

type Matcher struct {
	provider ports.VersionProvider
	log      ports.Logger
}

func NewMatcher(provider ports.VersionProvider, log ports.Logger) *Matcher {
	return &Matcher{provider: provider, log: log}
}

// Select picks the compiler version for one cluster. Installed versions are
// preferred; among the satisfying candidates the lowest wins, so selection
// stays stable as newer compilers get released. When no installed version
// satisfies the intersection, the lowest satisfying available version is
// installed. An empty intersection over the available catalog is a
// configuration error naming the conflicting files.
func (m *Matcher) Select(ctx context.Context, g *domain.DependencyGraph, cluster domain.Cluster) (*semver.Version, error) {
	constraints, contributions, err := clusterConstraints(g, cluster)
	if err != nil {
		return nil, err
	}

	installed, err := m.provider.Installed(ctx, cluster.Language)
	if err != nil {
		return nil, zerr.Wrap(err, "list installed compiler versions")
	}
	if candidates := domain.SatisfiesAll(installed, constraints); len(candidates) > 0 {
		return candidates[0], nil
	}

	available, err := m.provider.Available(ctx, cluster.Language)
	if err != nil {
		return nil, zerr.Wrap(err, "list available compiler versions")
	}
	candidates := domain.SatisfiesAll(available, constraints)
	if len(candidates) == 0 {
		return nil, conflictError(cluster, contributions)
	}

	pick := candidates[0]
	m.log.Info(fmt.Sprintf("installing %s compiler %s", cluster.Language, pick))
	if err := m.provider.Install(ctx, cluster.Language, pick); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "install compiler"), "version", pick.String())
	}
	return pick, nil
}

// clusterConstraints parses every member's pragmas. Each constraint keeps a
// "path (pragma)" record so a conflict can name its contributors.
func clusterConstraints(g *domain.DependencyGraph, cluster domain.Cluster) ([]domain.Constraint, []string, error) {
	var constraints []domain.Constraint
	var contributions []string
	for _, path := range cluster.Files {
		i, ok := g.Lookup(path)
		if !ok {
			continue
		}
		for _, pragma := range g.Node(i).Pragmas {
			c, err := domain.ParseConstraint(pragma)
			if err != nil {
				return nil, nil, zerr.With(err, "file", path.String())
			}
			constraints = append(constraints, c)
			contributions = append(contributions, fmt.Sprintf("%s (%s)", path, pragma))
		}
	}
	return constraints, contributions, nil
}

func conflictError(cluster domain.Cluster, contributions []string) error {
	msg := fmt.Sprintf("no %s compiler satisfies %s",
		cluster.Language, strings.Join(contributions, ", "))
	return zerr.Wrap(domain.ErrVersionConflict, msg)
}
