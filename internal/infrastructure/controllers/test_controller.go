package controllers

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katjaweigel/ESMValTool/internal/domain/commands"
	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// TestController handles the "test" subcommand: run the suite, emit the
// coverage and result reports, and terminate the process with the
// engine's exit status.
type TestController struct {
	command commands.Test
	exit    func(int)
}

// NewTestController creates a new TestController.
func NewTestController(command commands.Test) *TestController {
	return &TestController{command: command, exit: os.Exit}
}

// GetBind returns the Cobra command metadata for the test controller.
func (it *TestController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "test [path]",
		Short: "Run the test suite and generate reports",
		Long: `Run the test suite through the configured engine with coverage
instrumentation for the declared package.

Three report artifacts are written under the report directory:
a human-readable HTML coverage tree, a machine-readable XML coverage
report, and a JUnit-style XML result report. The process exits with
the engine's status code (0 means all tests passed).`,
	}
}

// Execute runs the test suite and never returns control to the caller.
func (it *TestController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")
	reportDir, _ := cmd.Flags().GetString("report-dir")

	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	desc, err := loadDescriptor(cmd)
	if err != nil {
		logger.Errorf("Test run failed: %v", err)
		it.exit(1)
		return
	}

	status, runErr := it.command.Execute(ctx, desc, commands.TestOptions{
		ProjectDir: projectDir,
		ReportDir:  reportDir,
		Verbose:    verbose,
	})
	if runErr != nil {
		logger.Errorf("Test run failed: %v", runErr)
		it.exit(1)
		return
	}

	it.exit(status)
}

// AddFlags adds the test-specific flags to the given Cobra command.
func (it *TestController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("report-dir", "", "Override the report directory (default from manifest)")
}
