package entities

import "github.com/spf13/cobra"

// ControllerBind carries the Cobra command metadata for a controller.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI-facing component bound to one Cobra subcommand.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string)
}
