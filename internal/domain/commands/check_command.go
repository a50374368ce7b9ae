package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// Check is the interface for the check command.
type Check interface {
	Execute(ctx context.Context, desc *entities.PackageDescriptor, opts CheckOptions) (*CheckResult, error)
}

// CheckOptions holds runtime options for a manifest check.
type CheckOptions struct {
	ProjectDir string
}

// CheckResult separates hard manifest problems from advisory findings.
type CheckResult struct {
	Problems []string
	Warnings []string
}

// Ok reports whether the manifest passed without problems.
func (r *CheckResult) Ok() bool {
	return len(r.Problems) == 0
}

// CheckCommand lints a package descriptor: structural invariants become
// problems, while legal-but-suspicious declarations (such as names listed
// in both dependency lists) are only flagged, never rewritten.
type CheckCommand struct{}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

// Execute runs all checks against the descriptor.
func (it *CheckCommand) Execute(
	_ context.Context,
	desc *entities.PackageDescriptor,
	opts CheckOptions,
) (*CheckResult, error) {
	result := &CheckResult{}

	it.checkMetadata(desc, result)
	it.checkDependencies(desc, result)
	it.checkEntryPoints(desc, result)
	it.checkTestLayout(desc, opts.ProjectDir, result)

	return result, nil
}

func (it *CheckCommand) checkMetadata(desc *entities.PackageDescriptor, result *CheckResult) {
	if desc.Name == "" {
		result.Problems = append(result.Problems, "package name is required")
	}
	if len(desc.Packages) == 0 {
		result.Problems = append(result.Problems, "at least one sub-package must be declared")
	}
	for i, p := range desc.Packages {
		if p == "" {
			result.Problems = append(result.Problems, fmt.Sprintf("packages[%d] is empty", i))
		}
	}
}

func (it *CheckCommand) checkDependencies(desc *entities.PackageDescriptor, result *CheckResult) {
	if len(desc.Requires) == 0 {
		result.Problems = append(result.Problems, "the runtime dependency list must not be empty")
	}

	if dups := entities.DuplicateNames(desc.Requires); len(dups) > 0 {
		result.Problems = append(result.Problems,
			"duplicate names in requires: "+strings.Join(dups, ", "))
	}
	if dups := entities.DuplicateNames(desc.TestRequires); len(dups) > 0 {
		result.Problems = append(result.Problems,
			"duplicate names in test_requires: "+strings.Join(dups, ", "))
	}

	if len(desc.TestRequires) == 0 {
		result.Warnings = append(result.Warnings, "test_requires is empty")
	}

	if shared := desc.SharedRequirements(); len(shared) > 0 {
		result.Warnings = append(result.Warnings,
			"declared in both requires and test_requires: "+strings.Join(shared, ", "))
	}
}

func (it *CheckCommand) checkEntryPoints(desc *entities.PackageDescriptor, result *CheckResult) {
	seen := make(map[string]bool, len(desc.EntryPoints))
	for i, ep := range desc.EntryPoints {
		if ep.Command == "" {
			result.Problems = append(result.Problems,
				fmt.Sprintf("entry_points[%d].command is required", i))
			continue
		}
		if seen[ep.Command] {
			result.Problems = append(result.Problems,
				fmt.Sprintf("entry point %q is declared more than once", ep.Command))
		}
		seen[ep.Command] = true

		if _, _, err := ep.Split(); err != nil {
			result.Problems = append(result.Problems, err.Error())
		}
	}
}

func (it *CheckCommand) checkTestLayout(
	desc *entities.PackageDescriptor,
	projectDir string,
	result *CheckResult,
) {
	testsDir := resolvePath(projectDir, desc.Test.TestsDir)
	if info, err := os.Stat(testsDir); err != nil || !info.IsDir() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("tests directory %q does not exist; a test run will fail", testsDir))
	}

	if desc.Test.CovTarget == "" {
		result.Warnings = append(result.Warnings,
			"no coverage target resolved; coverage will not be attributed")
	}
}
