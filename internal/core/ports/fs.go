package ports

// SourceFinder discovers contract source files under a project root.
//
//go:generate go run go.uber.org/mock/mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks
type SourceFinder interface {
	// FindSources returns the contract source paths under root, sorted, so
	// downstream results never depend on filesystem iteration order.
	FindSources(root string) ([]string, error)
}

// Hasher computes content hashes.
type Hasher interface {
	// HashContent hashes raw bytes, rendered as %016x.
	HashContent(data []byte) string

	// HashFile hashes a file's content.
	HashFile(path string) (string, error)
}

// Verifier checks that previously produced artifact files are still present
// and readable. A missing artifact invalidates its cache entry.
type Verifier interface {
	VerifyArtifacts(paths []string) bool
}
