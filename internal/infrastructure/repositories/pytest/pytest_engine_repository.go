// Package pytest adapts the pytest test engine to the domain's
// TestEngineRepository interface.
package pytest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	logger "github.com/sirupsen/logrus"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// EngineRepository launches pytest with coverage instrumentation and the
// three report sinks, relaying its exit status verbatim.
type EngineRepository struct {
	stdout io.Writer
	stderr io.Writer
}

// NewEngineRepository creates an engine repository wired to the process
// standard streams.
func NewEngineRepository() *EngineRepository {
	return &EngineRepository{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run launches the engine and blocks until it exits. A non-zero engine
// status is not an error; only a failure to start the engine is.
func (it *EngineRepository) Run(ctx context.Context, run entities.TestRun) (int, error) {
	argv := buildArgs(run)

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return 0, fmt.Errorf("test engine %q not found in PATH: %w", argv[0], err)
	}

	logger.Debugf("Invoking: %s %v", path, argv[1:])

	cmd := exec.CommandContext(ctx, path, argv[1:]...)
	cmd.Dir = run.ProjectDir
	cmd.Stdout = it.stdout
	cmd.Stderr = it.stderr

	if runErr := cmd.Run(); runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("failed to run %q: %w", path, runErr)
	}

	return 0, nil
}

// buildArgs assembles the engine argv: the test root, the coverage target,
// and the three report sinks all derived from one report directory.
func buildArgs(run entities.TestRun) []string {
	return []string{
		run.Settings.Runner,
		run.Settings.TestsDir,
		"--cov=" + run.Settings.CovTarget,
		"--cov-report=html:" + run.Layout.CoverageHTMLDir(),
		"--cov-report=xml:" + run.Layout.CoverageXML(),
		"--junit-xml=" + run.Layout.JUnitXML(),
	}
}
