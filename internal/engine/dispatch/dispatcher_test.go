package dispatch_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
	"github.com/foundry-rs/compilers/internal/core/ports/mocks"
	"github.com/foundry-rs/compilers/internal/engine/dispatch"
)

type nopTelemetry struct{}

func (nopTelemetry) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, nopVertex{}
}
func (nopTelemetry) Close() error { return nil }

type nopVertex struct{}

func (nopVertex) Write(p []byte) (int, error) { return len(p), nil }
func (nopVertex) Done(error)                  {}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func solExecutor(ctrl *gomock.Controller) *mocks.MockCompilerExecutor {
	exec := mocks.NewMockCompilerExecutor(ctrl)
	exec.EXPECT().Language().Return(domain.LangSolidity).AnyTimes()
	return exec
}

func mixedGraph(t *testing.T) *domain.DependencyGraph {
	t.Helper()
	g := domain.NewDependencyGraph()
	a := g.AddNode(domain.SourceFile{
		Path: domain.NewInternedString("a.sol"), Language: domain.LangSolidity, Content: "contract A {}",
	})
	b := g.AddNode(domain.SourceFile{
		Path: domain.NewInternedString("b.sol"), Language: domain.LangSolidity, Content: "contract B {}",
	})
	g.AddNode(domain.SourceFile{
		Path: domain.NewInternedString("t.vy"), Language: domain.LangVyper, Content: "x: uint256",
	})
	g.AddEdge(a, b)
	return g
}

func TestPartitionGroupsByLanguageAndVersion(t *testing.T) {
	g := mixedGraph(t)
	dirty := map[domain.InternedString]struct{}{
		domain.NewInternedString("a.sol"): {},
		domain.NewInternedString("t.vy"):  {},
	}
	versions := map[domain.InternedString]*semver.Version{
		domain.NewInternedString("a.sol"): semver.MustParse("0.8.20"),
		domain.NewInternedString("t.vy"):  semver.MustParse("0.3.10"),
	}

	jobs := dispatch.Partition(g, dirty, versions, domain.Settings{})
	require.Len(t, jobs, 2)

	// Sorted by job ID: "solidity/..." precedes "vyper/...".
	assert.Equal(t, domain.LangSolidity, jobs[0].Language)
	assert.Equal(t, []string{"a.sol"}, jobs[0].DirtyFiles)
	// The clean import b.sol rides along as compiler context.
	assert.Contains(t, jobs[0].Sources, "b.sol")
	assert.Contains(t, jobs[0].Sources, "a.sol")

	assert.Equal(t, domain.LangVyper, jobs[1].Language)
	assert.Equal(t, []string{"t.vy"}, jobs[1].DirtyFiles)
	assert.NotContains(t, jobs[1].Sources, "a.sol")
}

func TestPartitionKeyIncludesSettingsFingerprint(t *testing.T) {
	g := mixedGraph(t)
	dirty := map[domain.InternedString]struct{}{
		domain.NewInternedString("a.sol"): {},
		domain.NewInternedString("t.vy"):  {},
	}
	versions := map[domain.InternedString]*semver.Version{
		domain.NewInternedString("a.sol"): semver.MustParse("0.8.20"),
		domain.NewInternedString("t.vy"):  semver.MustParse("0.3.10"),
	}
	settings := domain.Settings{Optimizer: domain.Optimizer{Enabled: true, Runs: 200}}

	jobs := dispatch.Partition(g, dirty, versions, settings)
	require.Len(t, jobs, 2)

	// The grouping key is the job ID: language, version and settings
	// fingerprint.
	assert.Equal(t, "solidity/0.8.20/"+settings.Fingerprint(), jobs[0].ID())
	assert.Equal(t, "vyper/0.3.10/"+settings.Fingerprint(), jobs[1].ID())
}

func TestPartitionSplitsVersionsWithinLanguage(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddNode(domain.SourceFile{Path: domain.NewInternedString("old.sol"), Language: domain.LangSolidity})
	g.AddNode(domain.SourceFile{Path: domain.NewInternedString("new.sol"), Language: domain.LangSolidity})
	dirty := map[domain.InternedString]struct{}{
		domain.NewInternedString("old.sol"): {},
		domain.NewInternedString("new.sol"): {},
	}
	versions := map[domain.InternedString]*semver.Version{
		domain.NewInternedString("old.sol"): semver.MustParse("0.7.6"),
		domain.NewInternedString("new.sol"): semver.MustParse("0.8.20"),
	}

	jobs := dispatch.Partition(g, dirty, versions, domain.Settings{})
	require.Len(t, jobs, 2)
	assert.Equal(t, "0.7.6", jobs[0].Version.String())
	assert.Equal(t, "0.8.20", jobs[1].Version.String())
}

func jobFor(files ...string) *domain.CompilationJob {
	sources := make(map[string]string, len(files))
	for _, f := range files {
		sources[f] = ""
	}
	return &domain.CompilationJob{
		Language:   domain.LangSolidity,
		Version:    semver.MustParse("0.8.20"),
		DirtyFiles: files,
		Sources:    sources,
	}
}

func TestDispatchResultsAlignWithJobOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := solExecutor(ctrl)
	exec.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *domain.CompilationJob) (*domain.CompileOutput, error) {
			return &domain.CompileOutput{CompilerVersion: job.DirtyFiles[0]}, nil
		}).
		Times(6)

	jobs := []*domain.CompilationJob{jobFor("a.sol"), jobFor("b.sol"), jobFor("c.sol")}

	for _, limit := range []int{1, 4} {
		d := dispatch.NewDispatcher(
			[]ports.CompilerExecutor{exec}, nopTelemetry{}, quietLogger(ctrl), limit)
		results := d.Dispatch(t.Context(), jobs)
		require.Len(t, results, 3)
		for i, res := range results {
			require.NoError(t, res.Err)
			assert.Equal(t, jobs[i].DirtyFiles[0], res.Output.CompilerVersion)
		}
	}
}

func TestDispatchRetriesInvocationFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := solExecutor(ctrl)
	var calls atomic.Int32
	exec.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.CompilationJob) (*domain.CompileOutput, error) {
			if calls.Add(1) < 3 {
				return nil, errors.New("solc crashed")
			}
			return &domain.CompileOutput{}, nil
		}).
		Times(3)

	d := dispatch.NewDispatcher(
		[]ports.CompilerExecutor{exec}, nopTelemetry{}, quietLogger(ctrl), 1)
	results := d.Dispatch(t.Context(), []*domain.CompilationJob{jobFor("a.sol")})
	require.NoError(t, results[0].Err)
}

func TestDispatchExhaustedRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := solExecutor(ctrl)
	exec.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("binary missing")).
		Times(3)

	d := dispatch.NewDispatcher(
		[]ports.CompilerExecutor{exec}, nopTelemetry{}, quietLogger(ctrl), 1)
	results := d.Dispatch(t.Context(), []*domain.CompilationJob{jobFor("a.sol")})
	require.ErrorIs(t, results[0].Err, domain.ErrCompilerInvocation)
	assert.True(t, results[0].Failed())
}

func TestDispatchDiagnosticsAreNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := solExecutor(ctrl)
	exec.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		Return(&domain.CompileOutput{
			Diagnostics: []domain.Diagnostic{{Severity: domain.SeverityError, Message: "type error"}},
		}, nil).
		Times(1)

	d := dispatch.NewDispatcher(
		[]ports.CompilerExecutor{exec}, nopTelemetry{}, quietLogger(ctrl), 1)
	results := d.Dispatch(t.Context(), []*domain.CompilationJob{jobFor("a.sol")})
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Failed())
}

func TestDispatchIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := solExecutor(ctrl)
	exec.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *domain.CompilationJob) (*domain.CompileOutput, error) {
			if job.DirtyFiles[0] == "bad.sol" {
				return nil, errors.New("exploded")
			}
			return &domain.CompileOutput{}, nil
		}).
		Times(5)

	d := dispatch.NewDispatcher(
		[]ports.CompilerExecutor{exec}, nopTelemetry{}, quietLogger(ctrl), 2)
	results := d.Dispatch(t.Context(), []*domain.CompilationJob{
		jobFor("a.sol"), jobFor("bad.sol"), jobFor("c.sol"),
	})
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	require.NoError(t, results[2].Err)
}

func TestDispatchUnknownLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := dispatch.NewDispatcher(nil, nopTelemetry{}, quietLogger(ctrl), 1)
	results := d.Dispatch(t.Context(), []*domain.CompilationJob{jobFor("a.sol")})
	require.ErrorIs(t, results[0].Err, domain.ErrNoExecutor)
}
