package repositories

import (
	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// ShimRepository installs executable shims for console entry points.
type ShimRepository interface {
	// Install writes one executable shim for the entry point into binDir
	// and returns the path of the installed file.
	Install(binDir, interpreter, version string, ep entities.EntryPoint) (string, error)
}
