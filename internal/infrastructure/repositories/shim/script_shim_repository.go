// Package shim installs POSIX shell shims for console entry points,
// mirroring what setuptools generates for console_scripts.
package shim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

const (
	binDirMode = 0o755
	shimMode   = 0o755
)

// ScriptRepository writes one executable shell script per entry point.
type ScriptRepository struct{}

// NewScriptRepository creates a new script-based shim repository.
func NewScriptRepository() *ScriptRepository {
	return &ScriptRepository{}
}

// Install writes the shim for the entry point into binDir. An existing
// shim with the same name is overwritten.
func (it *ScriptRepository) Install(
	binDir, interpreter, version string,
	ep entities.EntryPoint,
) (string, error) {
	module, function, err := ep.Split()
	if err != nil {
		return "", err
	}

	if mkdirErr := os.MkdirAll(binDir, binDirMode); mkdirErr != nil {
		return "", fmt.Errorf("failed to create bin directory %q: %w", binDir, mkdirErr)
	}

	script := fmt.Sprintf(`#!/bin/sh
# %s console script (version %s), generated by esmvalpkg
exec %s -c 'import sys; from %s import %s; sys.exit(%s())' "$@"
`, ep.Command, version, interpreter, module, function, function)

	path := filepath.Join(binDir, ep.Command)
	if writeErr := os.WriteFile(path, []byte(script), shimMode); writeErr != nil {
		return "", fmt.Errorf("failed to write shim %q: %w", path, writeErr)
	}

	return path, nil
}
