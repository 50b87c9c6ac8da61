package fs

import (
	"os"

	"github.com/foundry-rs/compilers/internal/core/ports"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks that previously written artifact files still exist.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyArtifacts reports whether every path exists and is a regular file.
func (v *Verifier) VerifyArtifacts(paths []string) bool {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return false
		}
	}
	return true
}
