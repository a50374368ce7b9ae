package entities

import (
	"errors"
	"fmt"
	"strings"
)

const (
	defaultRunner    = "pytest"
	defaultTestsDir  = "tests"
	defaultReportDir = "test-reports"
)

// PackageDescriptor is the build/install descriptor for the distribution:
// package metadata, dependency manifests, and console entry points.
type PackageDescriptor struct {
	Name               string       `yaml:"name"`
	Version            string       `yaml:"version"`          // Static fallback when SCM metadata is unavailable
	UseSCMVersion      bool         `yaml:"use_scm_version"`  // Derive the version from Git metadata
	DescriptionFile    string       `yaml:"description_file"` // README whose contents become the description
	Packages           []string     `yaml:"packages"`
	IncludePackageData bool         `yaml:"include_package_data"`
	Requires           []string     `yaml:"requires"`      // Runtime dependency names
	TestRequires       []string     `yaml:"test_requires"` // Test-only dependency names
	EntryPoints        []EntryPoint `yaml:"entry_points"`
	Test               TestSettings `yaml:"test"`

	// Description is loaded from DescriptionFile, never set in the manifest.
	Description string `yaml:"-"`
}

// EntryPoint maps a shell-invocable command name to a fully-qualified
// "module:function" target to be installed as an executable shim.
type EntryPoint struct {
	Command string `yaml:"command"`
	Target  string `yaml:"target"`
}

// TestSettings configures the test-run operation.
type TestSettings struct {
	Runner    string `yaml:"runner"`     // Test engine executable (default "pytest")
	TestsDir  string `yaml:"tests_dir"`  // Test root path (default "tests")
	CovTarget string `yaml:"cov_target"` // Package for coverage attribution
	ReportDir string `yaml:"report_dir"` // Root for the report artifacts
}

// Split breaks the "module:function" target into its two halves.
func (e EntryPoint) Split() (string, string, error) {
	module, function, ok := strings.Cut(e.Target, ":")
	if !ok || module == "" || function == "" {
		return "", "", fmt.Errorf(
			"entry point %q has invalid target %q (expected module:function)",
			e.Command, e.Target,
		)
	}
	return module, function, nil
}

// ApplyDefaults fills in the defaulted test settings. The coverage target
// defaults to the first declared sub-package, mirroring how coverage is
// attributed to the distribution's own code.
func (d *PackageDescriptor) ApplyDefaults() {
	if d.Test.Runner == "" {
		d.Test.Runner = defaultRunner
	}
	if d.Test.TestsDir == "" {
		d.Test.TestsDir = defaultTestsDir
	}
	if d.Test.ReportDir == "" {
		d.Test.ReportDir = defaultReportDir
	}
	if d.Test.CovTarget == "" && len(d.Packages) > 0 {
		d.Test.CovTarget = d.Packages[0]
	}
}

// Validate checks the descriptor invariants: non-empty names, at least one
// sub-package, non-empty runtime requirements, no duplicates within either
// dependency list, and well-formed entry-point targets.
func (d *PackageDescriptor) Validate() error {
	if d.Name == "" {
		return errors.New("package name is required")
	}
	if len(d.Packages) == 0 {
		return errors.New("at least one sub-package must be declared")
	}
	if len(d.Requires) == 0 {
		return errors.New("the runtime dependency list must not be empty")
	}

	for i, p := range d.Packages {
		if p == "" {
			return fmt.Errorf("packages[%d] is empty", i)
		}
	}

	if dups := DuplicateNames(d.Requires); len(dups) > 0 {
		return fmt.Errorf("duplicate names in requires: %s", strings.Join(dups, ", "))
	}
	if dups := DuplicateNames(d.TestRequires); len(dups) > 0 {
		return fmt.Errorf("duplicate names in test_requires: %s", strings.Join(dups, ", "))
	}

	seen := make(map[string]bool, len(d.EntryPoints))
	for i, ep := range d.EntryPoints {
		if ep.Command == "" {
			return fmt.Errorf("entry_points[%d].command is required", i)
		}
		if seen[ep.Command] {
			return fmt.Errorf("entry point %q is declared more than once", ep.Command)
		}
		seen[ep.Command] = true
		if _, _, err := ep.Split(); err != nil {
			return err
		}
	}

	return nil
}

// DuplicateNames returns the names that appear more than once in the list,
// each reported a single time, in first-occurrence order.
func DuplicateNames(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}

	var dups []string
	reported := make(map[string]bool)
	for _, n := range names {
		if counts[n] > 1 && !reported[n] {
			dups = append(dups, n)
			reported[n] = true
		}
	}
	return dups
}

// SharedRequirements returns the names present in both the runtime and the
// test-only lists, in runtime-list order. Overlap is legal (the original
// manifest ships pytest and pytest-cov in both lists) but callers are
// expected to surface it rather than silently deduplicate.
func (d *PackageDescriptor) SharedRequirements() []string {
	testOnly := make(map[string]bool, len(d.TestRequires))
	for _, n := range d.TestRequires {
		testOnly[n] = true
	}

	var shared []string
	for _, n := range d.Requires {
		if testOnly[n] {
			shared = append(shared, n)
		}
	}
	return shared
}
