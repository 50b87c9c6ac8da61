package solc_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/foundry-rs/compilers/internal/adapters/solc"
	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports/mocks"
)

const cannedOutput = `{
  "errors": [
    {"severity": "warning", "message": "unused variable",
     "formattedMessage": "Warning: unused variable", "sourceLocation": {"file": "a.sol"}}
  ],
  "contracts": {
    "a.sol": {
      "A": {
        "abi": [],
        "metadata": "{\"compiler\":{\"version\":\"0.8.20\"}}",
        "evm": {
          "bytecode": {"object": "6080"},
          "deployedBytecode": {"object": "6001"}
        }
      }
    }
  }
}`

// fakeCompiler writes a script that swallows stdin and prints the given
// response, standing in for a solc binary.
func fakeCompiler(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "solc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func solJob() *domain.CompilationJob {
	return &domain.CompilationJob{
		Language:   domain.LangSolidity,
		Version:    semver.MustParse("0.8.20"),
		DirtyFiles: []string{"a.sol"},
		Sources:    map[string]string{"a.sol": "contract A {}"},
	}
}

func TestCompileParsesStandardOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	binary := fakeCompiler(t, "cat > /dev/null\ncat <<'EOF'\n"+cannedOutput+"\nEOF\n")
	versions := mocks.NewMockVersionProvider(ctrl)
	versions.EXPECT().
		BinaryPath(domain.LangSolidity, semver.MustParse("0.8.20")).
		Return(binary, nil)

	out, err := solc.NewExecutor(versions).Compile(t.Context(), solJob())
	require.NoError(t, err)

	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, domain.SeverityWarning, out.Diagnostics[0].Severity)
	assert.Equal(t, "a.sol", out.Diagnostics[0].File)
	assert.Equal(t, "Warning: unused variable", out.Diagnostics[0].Message)

	artifact := out.Contracts["a.sol"]["A"]
	assert.Equal(t, "6080", artifact.Bytecode)
	assert.Equal(t, "6001", artifact.DeployedBytecode)
	assert.NotEmpty(t, artifact.Metadata)
	assert.Equal(t, "0.8.20", out.CompilerVersion)
}

func TestCompileProcessFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	binary := fakeCompiler(t, "echo 'segfault' >&2\nexit 1\n")
	versions := mocks.NewMockVersionProvider(ctrl)
	versions.EXPECT().
		BinaryPath(domain.LangSolidity, gomock.Any()).
		Return(binary, nil)

	_, err := solc.NewExecutor(versions).Compile(t.Context(), solJob())
	require.Error(t, err)
}

func TestCompileMissingBinary(t *testing.T) {
	ctrl := gomock.NewController(t)
	versions := mocks.NewMockVersionProvider(ctrl)
	versions.EXPECT().
		BinaryPath(domain.LangSolidity, gomock.Any()).
		Return("", domain.ErrVersionNotInstalled)

	_, err := solc.NewExecutor(versions).Compile(t.Context(), solJob())
	require.ErrorIs(t, err, domain.ErrVersionNotInstalled)
}
