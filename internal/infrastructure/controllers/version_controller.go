package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katjaweigel/ESMValTool/internal/domain/commands"
	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// VersionController handles the "version" subcommand.
type VersionController struct {
	command commands.Version
}

// NewVersionController creates a new VersionController.
func NewVersionController(command commands.Version) *VersionController {
	return &VersionController{command: command}
}

// GetBind returns the Cobra command metadata for the version controller.
func (it *VersionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "version [path]",
		Short: "Print the resolved package version",
		Long: `Print the effective package version: derived from version-control
metadata when the manifest enables use_scm_version, otherwise the static
version field.`,
	}
}

// Execute prints the resolved version.
func (it *VersionController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	desc, err := loadDescriptor(cmd)
	if err != nil {
		logger.Errorf("Version resolution failed: %v", err)
		return
	}

	version, resolveErr := it.command.Execute(ctx, desc, projectDir)
	if resolveErr != nil {
		logger.Errorf("Version resolution failed: %v", resolveErr)
		return
	}

	fmt.Println(version)
}
