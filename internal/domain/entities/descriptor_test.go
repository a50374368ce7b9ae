package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

func TestPackageDescriptorValidate(t *testing.T) {
	t.Parallel()

	t.Run("should accept a complete descriptor", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Name:     "ESMValTool",
			Packages: []string{"esmvaltool"},
			Requires: []string{"numpy", "netCDF4"},
			EntryPoints: []entities.EntryPoint{
				{Command: "esmvaltool", Target: "esmvaltool.main:run"},
			},
		}

		// when
		err := desc.Validate()

		// then
		require.NoError(t, err)
	})

	t.Run("should fail when name is empty", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Packages: []string{"esmvaltool"},
			Requires: []string{"numpy"},
		}

		// when
		err := desc.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("should fail when no sub-packages are declared", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Name:     "ESMValTool",
			Requires: []string{"numpy"},
		}

		// when
		err := desc.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sub-package")
	})

	t.Run("should fail when the runtime dependency list is empty", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Name:     "ESMValTool",
			Packages: []string{"esmvaltool"},
		}

		// when
		err := desc.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "runtime dependency list")
	})

	t.Run("should fail on duplicate names within a dependency list", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Name:     "ESMValTool",
			Packages: []string{"esmvaltool"},
			Requires: []string{"numpy", "pyyaml", "numpy"},
		}

		// when
		err := desc.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate names in requires")
		assert.Contains(t, err.Error(), "numpy")
	})

	t.Run("should allow names shared between runtime and test lists", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Name:         "ESMValTool",
			Packages:     []string{"esmvaltool"},
			Requires:     []string{"pytest", "pytest-cov"},
			TestRequires: []string{"pytest", "pytest-cov", "mock"},
		}

		// when
		err := desc.Validate()

		// then
		require.NoError(t, err)
	})

	t.Run("should fail on a malformed entry-point target", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Name:     "ESMValTool",
			Packages: []string{"esmvaltool"},
			Requires: []string{"numpy"},
			EntryPoints: []entities.EntryPoint{
				{Command: "esmvaltool", Target: "esmvaltool.main.run"},
			},
		}

		// when
		err := desc.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "module:function")
	})

	t.Run("should fail on a duplicate entry-point command", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Name:     "ESMValTool",
			Packages: []string{"esmvaltool"},
			Requires: []string{"numpy"},
			EntryPoints: []entities.EntryPoint{
				{Command: "esmvaltool", Target: "esmvaltool.main:run"},
				{Command: "esmvaltool", Target: "esmvaltool.cli:main"},
			},
		}

		// when
		err := desc.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "more than once")
	})
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	t.Run("should fill in the default test settings", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Name:     "ESMValTool",
			Packages: []string{"esmvaltool"},
			Requires: []string{"numpy"},
		}

		// when
		desc.ApplyDefaults()

		// then
		assert.Equal(t, "pytest", desc.Test.Runner)
		assert.Equal(t, "tests", desc.Test.TestsDir)
		assert.Equal(t, "test-reports", desc.Test.ReportDir)
		assert.Equal(t, "esmvaltool", desc.Test.CovTarget)
	})

	t.Run("should keep explicit settings", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Packages: []string{"esmvaltool"},
			Test: entities.TestSettings{
				Runner:    "pytest-3",
				TestsDir:  "spec",
				CovTarget: "other",
				ReportDir: "reports",
			},
		}

		// when
		desc.ApplyDefaults()

		// then
		assert.Equal(t, "pytest-3", desc.Test.Runner)
		assert.Equal(t, "spec", desc.Test.TestsDir)
		assert.Equal(t, "reports", desc.Test.ReportDir)
		assert.Equal(t, "other", desc.Test.CovTarget)
	})
}

func TestDuplicateNames(t *testing.T) {
	t.Parallel()

	t.Run("should report each duplicate once in first-occurrence order", func(t *testing.T) {
		t.Parallel()

		// given
		names := []string{"numpy", "pyyaml", "numpy", "pyyaml", "numpy", "shapely"}

		// when
		dups := entities.DuplicateNames(names)

		// then
		assert.Equal(t, []string{"numpy", "pyyaml"}, dups)
	})

	t.Run("should return nothing for a clean list", func(t *testing.T) {
		t.Parallel()

		// given
		names := []string{"numpy", "pyyaml"}

		// when
		dups := entities.DuplicateNames(names)

		// then
		assert.Empty(t, dups)
	})
}

func TestSharedRequirements(t *testing.T) {
	t.Parallel()

	t.Run("should report the names declared in both lists", func(t *testing.T) {
		t.Parallel()

		// given
		desc := &entities.PackageDescriptor{
			Requires:     []string{"numpy", "pytest", "pytest-cov"},
			TestRequires: []string{"easytest", "mock", "nose", "pytest", "pytest-cov"},
		}

		// when
		shared := desc.SharedRequirements()

		// then
		assert.Equal(t, []string{"pytest", "pytest-cov"}, shared)
	})
}

func TestEntryPointSplit(t *testing.T) {
	t.Parallel()

	t.Run("should split a well-formed target", func(t *testing.T) {
		t.Parallel()

		// given
		ep := entities.EntryPoint{Command: "esmvaltool", Target: "esmvaltool.main:run"}

		// when
		module, function, err := ep.Split()

		// then
		require.NoError(t, err)
		assert.Equal(t, "esmvaltool.main", module)
		assert.Equal(t, "run", function)
	})

	t.Run("should fail when the function half is missing", func(t *testing.T) {
		t.Parallel()

		// given
		ep := entities.EntryPoint{Command: "esmvaltool", Target: "esmvaltool.main:"}

		// when
		_, _, err := ep.Split()

		// then
		require.Error(t, err)
	})
}
