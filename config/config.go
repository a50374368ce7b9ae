package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a package manifest, expanding environment variable
// references and loading the description file when one is declared.
// Both YAML (package.yaml) and HCL (package.hcl) manifests are supported.
func Load(path string) (*entities.PackageDescriptor, error) {
	desc, err := LoadRaw(path)
	if err != nil {
		return nil, err
	}

	if validateErr := desc.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid manifest %q: %w", path, validateErr)
	}

	if shared := desc.SharedRequirements(); len(shared) > 0 {
		logger.Warnf(
			"Names declared in both requires and test_requires: %s",
			strings.Join(shared, ", "),
		)
	}

	return desc, nil
}

// LoadRaw parses a manifest without enforcing the descriptor invariants.
// The check command uses it so that a broken manifest can still be linted.
func LoadRaw(path string) (*entities.PackageDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	var desc *entities.PackageDescriptor
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		desc, err = parseHCL(data, path)
	} else {
		desc, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	expandDescriptor(desc)
	desc.ApplyDefaults()
	loadDescription(desc, filepath.Dir(path))

	return desc, nil
}

// FindManifestFile searches for a package manifest in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindManifestFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(locations, homeDir)
	}

	patterns := []string{
		"package.yaml",
		"package.yml",
		"package.hcl",
		".esmvalpkg.yaml",
		".esmvalpkg.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("manifest not found in default locations")
}

func parseYAML(data []byte) (*entities.PackageDescriptor, error) {
	var desc entities.PackageDescriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &desc, nil
}

// expandDescriptor expands ${ENV_VAR} references in the path-like fields.
func expandDescriptor(desc *entities.PackageDescriptor) {
	desc.DescriptionFile = expandValue(desc.DescriptionFile)
	desc.Test.Runner = expandValue(desc.Test.Runner)
	desc.Test.TestsDir = expandValue(desc.Test.TestsDir)
	desc.Test.ReportDir = expandValue(desc.Test.ReportDir)
}

// expandValue replaces ${ENV_VAR} references with their values.
func expandValue(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// loadDescription reads the declared description file relative to the
// manifest directory. A missing file is tolerated with a warning so that
// the descriptor stays usable for test runs in stripped-down checkouts.
func loadDescription(desc *entities.PackageDescriptor, baseDir string) {
	if desc.DescriptionFile == "" {
		return
	}

	path := desc.DescriptionFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf("Failed to read description file %q: %v", path, err)
		return
	}
	desc.Description = string(data)
}
