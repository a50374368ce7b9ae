package repositories

import (
	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// ScmVersionRepository derives a package version from version-control
// metadata in a working directory.
type ScmVersionRepository interface {
	ResolveVersion(dir string) (entities.ScmVersion, error)
}
