package commands

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
	"github.com/katjaweigel/ESMValTool/internal/domain/repositories"
)

// Install is the interface for the install command.
type Install interface {
	Execute(ctx context.Context, desc *entities.PackageDescriptor, opts InstallOptions) ([]InstalledShim, error)
}

// InstallOptions holds runtime options for an install run.
type InstallOptions struct {
	ProjectDir  string
	BinDir      string
	Interpreter string
	DryRun      bool
}

// InstalledShim records one entry-point shim written to disk.
type InstalledShim struct {
	Command string
	Path    string
}

// InstallCommand registers the declared console entry points: it resolves
// the package version, verifies the declared sub-package directories, and
// writes one executable shim per entry point.
type InstallCommand struct {
	scm   repositories.ScmVersionRepository
	shims repositories.ShimRepository
}

// NewInstallCommand creates a new InstallCommand with the given repositories.
func NewInstallCommand(
	scm repositories.ScmVersionRepository,
	shims repositories.ShimRepository,
) *InstallCommand {
	return &InstallCommand{scm: scm, shims: shims}
}

// Execute installs all entry-point shims and returns what was written.
func (it *InstallCommand) Execute(
	_ context.Context,
	desc *entities.PackageDescriptor,
	opts InstallOptions,
) ([]InstalledShim, error) {
	if len(desc.EntryPoints) == 0 {
		logger.Info("No entry points declared, nothing to install.")
		return nil, nil
	}

	version := resolvePackageVersion(it.scm, desc, opts.ProjectDir)
	logger.Infof("Installing %s %s", desc.Name, version)

	it.verifyPackages(desc, opts.ProjectDir)

	var installed []InstalledShim
	for _, ep := range desc.EntryPoints {
		if opts.DryRun {
			logger.Infof("[DRY RUN] Would install %q -> %s", ep.Command, ep.Target)
			continue
		}

		path, err := it.shims.Install(opts.BinDir, opts.Interpreter, version, ep)
		if err != nil {
			return installed, fmt.Errorf("failed to install entry point %q: %w", ep.Command, err)
		}

		logger.Infof("Installed %q -> %s", ep.Command, path)
		installed = append(installed, InstalledShim{Command: ep.Command, Path: path})
	}

	return installed, nil
}

// verifyPackages warns about declared sub-packages that have no directory
// in the project tree. The shims still get installed; the interpreter will
// report the import failure at run time.
func (it *InstallCommand) verifyPackages(desc *entities.PackageDescriptor, projectDir string) {
	for _, pkg := range desc.Packages {
		dir := resolvePath(projectDir, pkg)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logger.Warnf("Declared sub-package %q has no directory at %q", pkg, dir)
			continue
		}
		if desc.IncludePackageData {
			logger.Debugf("Sub-package %q ships with its version-controlled data files", pkg)
		}
	}
}
