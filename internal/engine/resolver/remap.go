package resolver

import (
	"strings"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

// ApplyRemappings rewrites an import string using the project's remappings.
// The longest matching prefix wins; among equal-length prefixes the one
// declared first wins. An import with no matching prefix is returned
// unchanged.
func ApplyRemappings(importPath string, remappings []domain.Remapping) string {
	best := -1
	bestLen := -1
	for i, r := range remappings {
		if !strings.HasPrefix(importPath, r.Prefix) {
			continue
		}
		if len(r.Prefix) > bestLen {
			best = i
			bestLen = len(r.Prefix)
		}
	}
	if best < 0 {
		return importPath
	}
	return remappings[best].Target + importPath[bestLen:]
}
