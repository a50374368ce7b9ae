package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// DescriptorBuilder helps create test package descriptors with a fluent interface.
type DescriptorBuilder struct {
	*testkit.BaseBuilder
	name         string
	version      string
	useSCM       bool
	packages     []string
	requires     []string
	testRequires []string
	entryPoints  []entities.EntryPoint
	test         entities.TestSettings
}

// NewDescriptorBuilder creates a new descriptor builder with sensible defaults.
func NewDescriptorBuilder() *DescriptorBuilder {
	return &DescriptorBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		name:         "ESMValTool",
		version:      "2.0.0",
		useSCM:       false,
		packages:     []string{"esmvaltool"},
		requires:     []string{"numpy", "netCDF4", "pyyaml", "pytest", "pytest-cov"},
		testRequires: []string{"mock", "pytest", "pytest-cov"},
		entryPoints: []entities.EntryPoint{
			{Command: "esmvaltool", Target: "esmvaltool.main:run"},
		},
		test: entities.TestSettings{
			Runner:    "pytest",
			TestsDir:  "tests",
			CovTarget: "esmvaltool",
			ReportDir: "test-reports",
		},
	}
}

// WithName sets the package name.
func (b *DescriptorBuilder) WithName(name string) *DescriptorBuilder {
	b.name = name
	return b
}

// WithVersion sets the static version.
func (b *DescriptorBuilder) WithVersion(version string) *DescriptorBuilder {
	b.version = version
	return b
}

// WithSCMVersion enables version derivation from SCM metadata.
func (b *DescriptorBuilder) WithSCMVersion() *DescriptorBuilder {
	b.useSCM = true
	return b
}

// WithPackages sets the declared sub-packages.
func (b *DescriptorBuilder) WithPackages(packages ...string) *DescriptorBuilder {
	b.packages = packages
	return b
}

// WithRequires sets the runtime dependency list.
func (b *DescriptorBuilder) WithRequires(names ...string) *DescriptorBuilder {
	b.requires = names
	return b
}

// WithTestRequires sets the test-only dependency list.
func (b *DescriptorBuilder) WithTestRequires(names ...string) *DescriptorBuilder {
	b.testRequires = names
	return b
}

// WithEntryPoints sets the console entry points.
func (b *DescriptorBuilder) WithEntryPoints(eps ...entities.EntryPoint) *DescriptorBuilder {
	b.entryPoints = eps
	return b
}

// WithTestSettings sets the test-run settings.
func (b *DescriptorBuilder) WithTestSettings(ts entities.TestSettings) *DescriptorBuilder {
	b.test = ts
	return b
}

// Build creates the descriptor (satisfies testkit.Builder interface).
func (b *DescriptorBuilder) Build() interface{} {
	return b.BuildDescriptor()
}

// BuildDescriptor creates the descriptor with a concrete return type.
func (b *DescriptorBuilder) BuildDescriptor() *entities.PackageDescriptor {
	return &entities.PackageDescriptor{
		Name:          b.name,
		Version:       b.version,
		UseSCMVersion: b.useSCM,
		Packages:      b.packages,
		Requires:      b.requires,
		TestRequires:  b.testRequires,
		EntryPoints:   b.entryPoints,
		Test:          b.test,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DescriptorBuilder) Reset() testkit.Builder {
	fresh := NewDescriptorBuilder()
	b.BaseBuilder.Reset()
	b.name = fresh.name
	b.version = fresh.version
	b.useSCM = fresh.useSCM
	b.packages = fresh.packages
	b.requires = fresh.requires
	b.testRequires = fresh.testRequires
	b.entryPoints = fresh.entryPoints
	b.test = fresh.test
	return b
}

// Clone creates a deep copy of the DescriptorBuilder.
func (b *DescriptorBuilder) Clone() testkit.Builder {
	return &DescriptorBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		version:      b.version,
		useSCM:       b.useSCM,
		packages:     append([]string(nil), b.packages...),
		requires:     append([]string(nil), b.requires...),
		testRequires: append([]string(nil), b.testRequires...),
		entryPoints:  append([]entities.EntryPoint(nil), b.entryPoints...),
		test:         b.test,
	}
}
