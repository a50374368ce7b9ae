package pytest_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
	"github.com/katjaweigel/ESMValTool/internal/infrastructure/repositories/pytest"
)

// fakeEngine writes an executable shell script that exits with the given
// code, standing in for the real test engine.
func fakeEngine(t *testing.T, exitCode string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script engines are not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "fake-pytest")
	script := "#!/bin/sh\necho engine ran\nexit " + exitCode + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func newRun(runner string) entities.TestRun {
	return entities.TestRun{
		Settings: entities.TestSettings{
			Runner:    runner,
			TestsDir:  "tests",
			CovTarget: "esmvaltool",
		},
		Layout: entities.NewReportLayout("test-reports"),
	}
}

func TestBuildArgs(t *testing.T) {
	t.Parallel()

	t.Run("should assemble the engine argv with all three report sinks", func(t *testing.T) {
		t.Parallel()

		// given
		run := newRun("pytest")

		// when
		argv := pytest.BuildArgs(run)

		// then
		assert.Equal(t, []string{
			"pytest",
			"tests",
			"--cov=esmvaltool",
			"--cov-report=html:" + filepath.Join("test-reports", "coverage_html"),
			"--cov-report=xml:" + filepath.Join("test-reports", "coverage.xml"),
			"--junit-xml=" + filepath.Join("test-reports", "report.xml"),
		}, argv)
	})
}

func TestEngineRepositoryRun(t *testing.T) {
	t.Parallel()

	t.Run("should return zero when the engine passes", func(t *testing.T) {
		t.Parallel()

		// given
		var stdout, stderr bytes.Buffer
		repo := pytest.NewEngineRepositoryWithStreams(&stdout, &stderr)
		run := newRun(fakeEngine(t, "0"))

		// when
		status, err := repo.Run(context.Background(), run)

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, status)
		assert.Contains(t, stdout.String(), "engine ran")
	})

	t.Run("should relay a non-zero engine status without an error", func(t *testing.T) {
		t.Parallel()

		// given
		var stdout, stderr bytes.Buffer
		repo := pytest.NewEngineRepositoryWithStreams(&stdout, &stderr)
		run := newRun(fakeEngine(t, "3"))

		// when
		status, err := repo.Run(context.Background(), run)

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, status)
	})

	t.Run("should fail when the engine is not on PATH", func(t *testing.T) {
		t.Parallel()

		// given
		repo := pytest.NewEngineRepository()
		run := newRun("definitely-not-a-real-test-engine-xyz")

		// when
		_, err := repo.Run(context.Background(), run)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found in PATH")
	})
}
