package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katjaweigel/ESMValTool/internal/domain/commands"
	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// InstallController handles the "install" subcommand.
type InstallController struct {
	command commands.Install
}

// NewInstallController creates a new InstallController.
func NewInstallController(command commands.Install) *InstallController {
	return &InstallController{command: command}
}

// GetBind returns the Cobra command metadata for the install controller.
func (it *InstallController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "install [path]",
		Short: "Install the console entry-point shims",
		Long: `Validate the package descriptor, resolve the package version from
version-control metadata, and install one executable shim per declared
console entry point into the bin directory.`,
	}
}

// Execute runs the install mode.
func (it *InstallController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	binDir, _ := cmd.Flags().GetString("bin-dir")
	interpreter, _ := cmd.Flags().GetString("interpreter")

	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	desc, err := loadDescriptor(cmd)
	if err != nil {
		logger.Errorf("Install failed: %v", err)
		return
	}

	installed, installErr := it.command.Execute(ctx, desc, commands.InstallOptions{
		ProjectDir:  projectDir,
		BinDir:      binDir,
		Interpreter: interpreter,
		DryRun:      dryRun,
	})
	if installErr != nil {
		logger.Errorf("Install failed: %v", installErr)
		return
	}

	logger.Infof("Install complete: %d shim(s) written", len(installed))
}

// AddFlags adds the install-specific flags to the given Cobra command.
func (it *InstallController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("bin-dir", "bin", "Directory for the entry-point shims")
	cmd.Flags().String("interpreter", "python3", "Interpreter the shims invoke")
}
