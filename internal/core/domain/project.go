package domain

// Remapping translates an import string prefix to a filesystem path prefix.
// Rules are ordered: among rules whose prefix matches, the longest prefix
// wins and ties go to the first-declared rule.
type Remapping struct {
	Prefix string
	Target string
}

// ProjectConfig is the resolved project configuration handed to the engine.
type ProjectConfig struct {
	// Root is the absolute project root.
	Root string

	// SourceDir is the directory under Root holding contract sources.
	SourceDir string

	// ArtifactsDir is where the artifact sink writes its output.
	ArtifactsDir string

	// CachePath is the durable cache store file.
	CachePath string

	Remappings []Remapping
	Settings   Settings

	// Parallelism bounds the dispatcher worker pool.
	Parallelism int
}
