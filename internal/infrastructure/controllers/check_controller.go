package controllers

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katjaweigel/ESMValTool/config"
	"github.com/katjaweigel/ESMValTool/internal/domain/commands"
	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// CheckController handles the "check" subcommand (manifest lint).
type CheckController struct {
	command commands.Check
	exit    func(int)
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check) *CheckController {
	return &CheckController{command: command, exit: os.Exit}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check [path]",
		Short: "Lint the package manifest",
		Long: `Check the package descriptor: structural problems (missing name,
duplicate dependency names, malformed entry-point targets) fail the
check, while suspicious-but-legal declarations such as names listed in
both dependency lists are only flagged.`,
	}
}

// Execute runs the manifest check and exits non-zero on problems.
func (it *CheckController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	manifestPath, err := resolveManifestPath(cmd)
	if err != nil {
		logger.Errorf("Check failed: %v", err)
		it.exit(1)
		return
	}

	// The raw loader keeps broken manifests lintable.
	desc, loadErr := config.LoadRaw(manifestPath)
	if loadErr != nil {
		logger.Errorf("Check failed: %v", loadErr)
		it.exit(1)
		return
	}

	result, checkErr := it.command.Execute(ctx, desc, commands.CheckOptions{
		ProjectDir: projectDir,
	})
	if checkErr != nil {
		logger.Errorf("Check failed: %v", checkErr)
		it.exit(1)
		return
	}

	for _, w := range result.Warnings {
		logger.Warnf("%s", w)
	}
	for _, p := range result.Problems {
		logger.Errorf("%s", p)
	}

	if !result.Ok() {
		logger.Errorf("Manifest check failed: %d problem(s)", len(result.Problems))
		it.exit(1)
		return
	}

	logger.Infof("Manifest OK (%d warning(s))", len(result.Warnings))
}
