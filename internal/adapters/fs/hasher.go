package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash content hashes rendered as %016x.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashContent hashes raw bytes.
func (h *Hasher) HashContent(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// HashFile hashes a file's content without loading it whole.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
