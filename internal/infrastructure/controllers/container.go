package controllers

import (
	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewTestController); err != nil {
		return err
	}
	if err := container.Provide(NewInstallController); err != nil {
		return err
	}
	if err := container.Provide(NewCheckController); err != nil {
		return err
	}
	if err := container.Provide(NewVersionController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	testController *TestController,
	installController *InstallController,
	checkController *CheckController,
	versionController *VersionController,
) *[]entities.Controller {
	return &[]entities.Controller{
		testController,
		installController,
		checkController,
		versionController,
	}
}
