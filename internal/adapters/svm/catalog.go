package svm

import (
	"github.com/Masterminds/semver/v3"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

// Release catalogs for versions the installer knows how to fetch. These
// back Available when the environment has nothing installed yet.
var (
	solcReleases = []string{
		"0.6.12",
		"0.7.6",
		"0.8.13",
		"0.8.17",
		"0.8.19",
		"0.8.20",
		"0.8.21",
		"0.8.23",
		"0.8.24",
		"0.8.25",
		"0.8.26",
	}
	vyperReleases = []string{
		"0.3.7",
		"0.3.10",
		"0.4.0",
	}
)

func catalog(lang domain.Language) []*semver.Version {
	var raw []string
	switch lang {
	case domain.LangVyper:
		raw = vyperReleases
	case domain.LangSolidity:
		raw = solcReleases
	}
	versions := make([]*semver.Version, len(raw))
	for i, r := range raw {
		versions[i] = semver.MustParse(r)
	}
	return versions
}
