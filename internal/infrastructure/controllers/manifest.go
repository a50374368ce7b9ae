package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katjaweigel/ESMValTool/config"
	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// resolveManifestPath returns the manifest path from the --manifest flag,
// falling back to the standard search locations.
func resolveManifestPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("manifest")
	if path != "" {
		return path, nil
	}

	found, err := config.FindManifestFile()
	if err != nil {
		return "", fmt.Errorf(
			"no manifest found: %w\nSpecify one with --manifest or create package.yaml", err,
		)
	}
	return found, nil
}

// loadDescriptor resolves and loads the validated package descriptor.
func loadDescriptor(cmd *cobra.Command) (*entities.PackageDescriptor, error) {
	path, err := resolveManifestPath(cmd)
	if err != nil {
		return nil, err
	}

	logger.Infof("Using manifest: %s", path)

	return config.Load(path)
}
