package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Constraint is one parsed compiler version requirement taken from a source
// file's version pragma.
type Constraint struct {
	raw string
	set *semver.Constraints
}

// ParseConstraint parses a raw pragma version string. Solidity pragma
// semantics differ from plain semver in one respect: a bare version with no
// leading operator ("0.8.20") means exactly that version, not the caret range
// a default semver parse would produce.
func ParseConstraint(raw string) (Constraint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Constraint{}, zerr.With(ErrInvalidConstraint, "constraint", raw)
	}
	normalized := trimmed
	if c := trimmed[0]; c >= '0' && c <= '9' {
		normalized = "=" + trimmed
	}
	set, err := semver.NewConstraint(normalized)
	if err != nil {
		return Constraint{}, zerr.With(zerr.Wrap(err, "failed to parse version constraint"), "constraint", raw)
	}
	return Constraint{raw: trimmed, set: set}, nil
}

// Check reports whether v satisfies the constraint.
func (c Constraint) Check(v *semver.Version) bool {
	if c.set == nil {
		return true
	}
	return c.set.Check(v)
}

// String returns the constraint as written in the source file.
func (c Constraint) String() string {
	return c.raw
}

// SatisfiesAll filters versions down to those satisfying every constraint,
// preserving order.
func SatisfiesAll(versions []*semver.Version, constraints []Constraint) []*semver.Version {
	var out []*semver.Version
	for _, v := range versions {
		ok := true
		for _, c := range constraints {
			if !c.Check(v) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, v)
		}
	}
	return out
}
