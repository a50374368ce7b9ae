// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"path/filepath"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// ---------------------------------------------------------------------------
// SpyEngineRepository
// ---------------------------------------------------------------------------

// SpyEngineRepository implements repositories.TestEngineRepository as a
// configurable spy. Configure Status/Err, then inspect Runs.
type SpyEngineRepository struct {
	Status int
	Err    error

	// spy: invocations received
	Runs []entities.TestRun
}

// Run records the invocation and returns the configured status.
func (s *SpyEngineRepository) Run(_ context.Context, run entities.TestRun) (int, error) {
	s.Runs = append(s.Runs, run)
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Status, nil
}

// ---------------------------------------------------------------------------
// SpyVersionRepository
// ---------------------------------------------------------------------------

// SpyVersionRepository implements repositories.ScmVersionRepository.
type SpyVersionRepository struct {
	Version entities.ScmVersion
	Err     error

	// spy: directories resolved
	Dirs []string
}

// ResolveVersion records the directory and returns the configured version.
func (s *SpyVersionRepository) ResolveVersion(dir string) (entities.ScmVersion, error) {
	s.Dirs = append(s.Dirs, dir)
	if s.Err != nil {
		return entities.ScmVersion{}, s.Err
	}
	return s.Version, nil
}

// ---------------------------------------------------------------------------
// SpyShimRepository
// ---------------------------------------------------------------------------

// SpyShimRepository implements repositories.ShimRepository without touching
// the filesystem.
type SpyShimRepository struct {
	Err error

	// spy: inputs received
	Installed    []entities.EntryPoint
	BinDirs      []string
	Interpreters []string
	Versions     []string
}

// Install records the request and returns the path a real installer would use.
func (s *SpyShimRepository) Install(
	binDir, interpreter, version string,
	ep entities.EntryPoint,
) (string, error) {
	s.Installed = append(s.Installed, ep)
	s.BinDirs = append(s.BinDirs, binDir)
	s.Interpreters = append(s.Interpreters, interpreter)
	s.Versions = append(s.Versions, version)
	if s.Err != nil {
		return "", s.Err
	}
	return filepath.Join(binDir, ep.Command), nil
}
