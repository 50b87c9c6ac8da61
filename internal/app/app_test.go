package app_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/foundry-rs/compilers/internal/adapters/fs"
	"github.com/foundry-rs/compilers/internal/adapters/sink"
	"github.com/foundry-rs/compilers/internal/adapters/store"
	"github.com/foundry-rs/compilers/internal/adapters/telemetry"
	"github.com/foundry-rs/compilers/internal/app"
	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
	"github.com/foundry-rs/compilers/internal/core/ports/mocks"
	"github.com/foundry-rs/compilers/internal/engine/cache"
	"github.com/foundry-rs/compilers/internal/engine/dispatch"
	"github.com/foundry-rs/compilers/internal/engine/resolver"
	"github.com/foundry-rs/compilers/internal/engine/version"
)

type fixture struct {
	root     string
	ctrl     *gomock.Controller
	executor *mocks.MockCompilerExecutor
	provider *mocks.MockVersionProvider
}

func newFixture(t *testing.T, installed ...string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		root:     root,
		ctrl:     ctrl,
		executor: mocks.NewMockCompilerExecutor(ctrl),
		provider: mocks.NewMockVersionProvider(ctrl),
	}
	f.executor.EXPECT().Language().Return(domain.LangSolidity).AnyTimes()

	versions := make([]*semver.Version, 0, len(installed))
	for _, v := range installed {
		versions = append(versions, semver.MustParse(v))
	}
	f.provider.EXPECT().
		Installed(gomock.Any(), domain.LangSolidity).
		Return(versions, nil).
		AnyTimes()
	return f
}

func (f *fixture) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// compileAll answers every Compile call with one artifact per source file,
// named after the file's base name.
func (f *fixture) compileAll() {
	f.executor.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *domain.CompilationJob) (*domain.CompileOutput, error) {
			out := &domain.CompileOutput{
				Contracts:       make(map[string]map[string]domain.ContractArtifact),
				CompilerVersion: job.Version.String(),
			}
			for path := range job.Sources {
				name := filepath.Base(path)
				name = name[:len(name)-len(filepath.Ext(name))]
				out.Contracts[path] = map[string]domain.ContractArtifact{
					name: {ABI: json.RawMessage(`[]`), Bytecode: "6080"},
				}
			}
			return out, nil
		}).
		AnyTimes()
}

// newApp assembles a full pipeline over the fixture's project, with only the
// compiler executor and version provider mocked.
func (f *fixture) newApp(t *testing.T) *app.App {
	t.Helper()
	log := mocks.NewMockLogger(f.ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	cfg := &domain.ProjectConfig{
		Root:         f.root,
		SourceDir:    "src",
		ArtifactsDir: "out",
		CachePath:    filepath.Join(f.root, "cache", "solbuild-cache.json"),
		Parallelism:  2,
	}

	hasher := fs.NewHasher()
	c := cache.New(store.NewStore(cfg.CachePath), fs.NewVerifier(), log)
	d := dispatch.NewDispatcher(
		[]ports.CompilerExecutor{f.executor}, telemetry.NewNoOp(), log, cfg.Parallelism)
	s := sink.NewSink(filepath.Join(f.root, "out"), f.root)

	return app.New(
		cfg,
		fs.NewWalker(),
		resolver.New(hasher),
		version.NewMatcher(f.provider, log),
		c,
		d,
		dispatch.NewMerger(s),
		s,
		log,
	)
}

func TestRunFullPipelineThenCleanRun(t *testing.T) {
	f := newFixture(t, "0.8.20")
	f.write(t, "src/A.sol", "pragma solidity ^0.8.0;\nimport \"./B.sol\";\ncontract A {}\n")
	f.write(t, "src/B.sol", "pragma solidity ^0.8.0;\ncontract B {}\n")
	f.compileAll()

	report, err := f.newApp(t).Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeBuilt, report.Outcome)
	require.Len(t, report.Jobs, 1)
	assert.Len(t, report.Jobs[0].Files, 2)
	assert.FileExists(t, filepath.Join(f.root, "out", "src", "A.sol", "A.json"))
	assert.FileExists(t, filepath.Join(f.root, "out", "src", "B.sol", "B.json"))
	assert.FileExists(t, filepath.Join(f.root, "cache", "solbuild-cache.json"))

	// Nothing changed: the second run reuses everything.
	report, err = f.newApp(t).Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeClean, report.Outcome)
	assert.Empty(t, report.Jobs)
	assert.Len(t, report.Cached, 2)
}

func TestRunRecompilesImportersOfChangedFile(t *testing.T) {
	f := newFixture(t, "0.8.20")
	f.write(t, "src/A.sol", "pragma solidity ^0.8.0;\nimport \"./B.sol\";\ncontract A {}\n")
	f.write(t, "src/B.sol", "pragma solidity ^0.8.0;\ncontract B {}\n")
	f.compileAll()

	_, err := f.newApp(t).Run(t.Context())
	require.NoError(t, err)

	f.write(t, "src/B.sol", "pragma solidity ^0.8.0;\ncontract B { uint256 x; }\n")

	report, err := f.newApp(t).Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeBuilt, report.Outcome)
	require.Len(t, report.Jobs, 1)
	// B changed, so its importer A recompiles too.
	assert.Len(t, report.Jobs[0].Files, 2)
	assert.Empty(t, report.Cached)
}

func TestRunVersionConflictAborts(t *testing.T) {
	f := newFixture(t, "0.8.20")
	f.write(t, "src/A.sol", "pragma solidity ^0.7.0;\nimport \"./B.sol\";\ncontract A {}\n")
	f.write(t, "src/B.sol", "pragma solidity ^0.8.0;\ncontract B {}\n")
	f.provider.EXPECT().
		Available(gomock.Any(), domain.LangSolidity).
		Return([]*semver.Version{semver.MustParse("0.8.20")}, nil)

	_, err := f.newApp(t).Run(t.Context())
	require.ErrorIs(t, err, domain.ErrVersionConflict)
}

func TestRunFailedJobStillPersistsOthers(t *testing.T) {
	f := newFixture(t, "0.7.6", "0.8.20")
	// Distinct exact pragmas force two jobs.
	f.write(t, "src/Old.sol", "pragma solidity 0.7.6;\ncontract Old {}\n")
	f.write(t, "src/New.sol", "pragma solidity 0.8.20;\ncontract New {}\n")
	f.executor.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *domain.CompilationJob) (*domain.CompileOutput, error) {
			if job.Version.String() == "0.7.6" {
				return &domain.CompileOutput{
					Diagnostics: []domain.Diagnostic{{Severity: domain.SeverityError, Message: "bad"}},
				}, nil
			}
			return &domain.CompileOutput{
				Contracts: map[string]map[string]domain.ContractArtifact{
					filepath.Join(f.root, "src", "New.sol"): {"New": {Bytecode: "6080"}},
				},
			}, nil
		}).
		AnyTimes()

	report, err := f.newApp(t).Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePartial, report.Outcome)
	assert.Len(t, report.FailedFiles(), 1)
	assert.FileExists(t, filepath.Join(f.root, "out", "src", "New.sol", "New.json"))
}

func TestClean(t *testing.T) {
	f := newFixture(t, "0.8.20")
	f.write(t, "src/A.sol", "pragma solidity ^0.8.0;\ncontract A {}\n")
	f.compileAll()

	a := f.newApp(t)
	_, err := a.Run(t.Context())
	require.NoError(t, err)

	require.NoError(t, a.Clean())
	assert.NoFileExists(t, filepath.Join(f.root, "out", "src", "A.sol", "A.json"))
	assert.NoFileExists(t, filepath.Join(f.root, "cache", "solbuild-cache.json"))
}
