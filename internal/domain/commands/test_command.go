package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
	"github.com/katjaweigel/ESMValTool/internal/domain/repositories"
)

const reportDirMode = 0o755

// Test is the interface for the test command.
type Test interface {
	Execute(ctx context.Context, desc *entities.PackageDescriptor, opts TestOptions) (int, error)
}

// TestOptions holds runtime options for a single test run.
type TestOptions struct {
	ProjectDir string
	ReportDir  string // If set, overrides the manifest's report directory
	Verbose    bool
}

// TestCommand runs the test suite through the external engine and relays
// its exit status. The engine owns test discovery, coverage
// instrumentation, and writing the three report artifacts; failures of any
// kind collapse to a non-zero status, which is passed through verbatim.
type TestCommand struct {
	engine repositories.TestEngineRepository
}

// NewTestCommand creates a new TestCommand with the given engine.
func NewTestCommand(engine repositories.TestEngineRepository) *TestCommand {
	return &TestCommand{engine: engine}
}

// Execute launches the engine and returns its exit status. The returned
// error is reserved for failures to start the engine at all.
func (it *TestCommand) Execute(
	ctx context.Context,
	desc *entities.PackageDescriptor,
	opts TestOptions,
) (int, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings := desc.Test
	if opts.ReportDir != "" {
		settings.ReportDir = opts.ReportDir
	}

	layout := entities.NewReportLayout(settings.ReportDir)

	// The engine creates the artifact files itself; only the report root
	// has to exist up front.
	if err := os.MkdirAll(resolvePath(opts.ProjectDir, layout.Dir), reportDirMode); err != nil {
		return 0, fmt.Errorf("failed to create report directory: %w", err)
	}

	logger.Infof("Running %s for package %q...", settings.Runner, settings.CovTarget)

	status, err := it.engine.Run(ctx, entities.TestRun{
		ProjectDir: opts.ProjectDir,
		Settings:   settings,
		Layout:     layout,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to run test engine: %w", err)
	}

	it.logSummary(resolvePath(opts.ProjectDir, layout.JUnitXML()), status)

	return status, nil
}

// logSummary parses the JUnit result report, when present, and logs the
// aggregated counts. A missing or broken report never changes the status.
func (it *TestCommand) logSummary(junitPath string, status int) {
	data, err := os.ReadFile(junitPath)
	if err != nil {
		logger.Warnf("No test-result report at %q: %v", junitPath, err)
		return
	}

	report, parseErr := entities.ParseJUnitReport(data)
	if parseErr != nil {
		logger.Warnf("Failed to parse %q: %v", junitPath, parseErr)
		return
	}

	totals := report.Totals()
	if status == 0 {
		logger.Infof("Test results: %s", totals)
	} else {
		logger.Errorf("Test results: %s (engine status %d)", totals, status)
	}
}

// resolvePath anchors a relative path at the project directory.
func resolvePath(projectDir, path string) string {
	if projectDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}
