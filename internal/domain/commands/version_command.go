package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
	"github.com/katjaweigel/ESMValTool/internal/domain/repositories"
)

const fallbackVersion = "0.0.0"

// Version is the interface for the version command.
type Version interface {
	Execute(ctx context.Context, desc *entities.PackageDescriptor, dir string) (string, error)
}

// VersionCommand resolves the effective package version: version-control
// metadata when the manifest opts in, otherwise the static version field.
type VersionCommand struct {
	scm repositories.ScmVersionRepository
}

// NewVersionCommand creates a new VersionCommand with the given repository.
func NewVersionCommand(scm repositories.ScmVersionRepository) *VersionCommand {
	return &VersionCommand{scm: scm}
}

// Execute returns the effective version string for the package.
func (it *VersionCommand) Execute(
	_ context.Context,
	desc *entities.PackageDescriptor,
	dir string,
) (string, error) {
	return resolvePackageVersion(it.scm, desc, dir), nil
}

// resolvePackageVersion applies the version resolution order shared by the
// version and install commands.
func resolvePackageVersion(
	scm repositories.ScmVersionRepository,
	desc *entities.PackageDescriptor,
	dir string,
) string {
	if desc.UseSCMVersion {
		v, err := scm.ResolveVersion(dir)
		if err == nil {
			return v.String()
		}
		logger.Warnf("SCM version unavailable, falling back to manifest version: %v", err)
	}

	if desc.Version != "" {
		return desc.Version
	}
	return fallbackVersion
}
