package internal

import (
	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// AppInternal aggregates the CLI-facing controllers of the application.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application aggregate.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
