package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// hclManifest mirrors the HCL manifest layout. It is decoded separately
// from the YAML entities so each codec keeps its own schema tags.
type hclManifest struct {
	Package *hclPackage `hcl:"package,block"`
}

type hclPackage struct {
	Name               string          `hcl:"name"`
	Version            string          `hcl:"version,optional"`
	UseSCMVersion      bool            `hcl:"use_scm_version,optional"`
	DescriptionFile    string          `hcl:"description_file,optional"`
	Packages           []string        `hcl:"packages"`
	IncludePackageData bool            `hcl:"include_package_data,optional"`
	Requires           []string        `hcl:"requires,optional"`
	TestRequires       []string        `hcl:"test_requires,optional"`
	EntryPoints        []hclEntryPoint `hcl:"entry_point,block"`
	Test               *hclTest        `hcl:"test,block"`
}

type hclEntryPoint struct {
	Command string `hcl:"command,label"`
	Target  string `hcl:"target"`
}

type hclTest struct {
	Runner    string `hcl:"runner,optional"`
	TestsDir  string `hcl:"tests_dir,optional"`
	CovTarget string `hcl:"cov_target,optional"`
	ReportDir string `hcl:"report_dir,optional"`
}

// parseHCL decodes an HCL manifest. Expressions may reference process
// environment variables through the env object, e.g. env.HOME.
func parseHCL(data []byte, filename string) (*entities.PackageDescriptor, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest: %w", diags)
	}

	var manifest hclManifest
	if decodeDiags := gohcl.DecodeBody(file.Body, evalContext(), &manifest); decodeDiags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest: %w", decodeDiags)
	}

	if manifest.Package == nil {
		return nil, fmt.Errorf("manifest %q has no package block", filename)
	}

	return manifest.Package.toDescriptor(), nil
}

// evalContext exposes the process environment as the env object.
func evalContext() *hcl.EvalContext {
	envVars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		envVars[key] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envVars),
		},
	}
}

func (p *hclPackage) toDescriptor() *entities.PackageDescriptor {
	desc := &entities.PackageDescriptor{
		Name:               p.Name,
		Version:            p.Version,
		UseSCMVersion:      p.UseSCMVersion,
		DescriptionFile:    p.DescriptionFile,
		Packages:           p.Packages,
		IncludePackageData: p.IncludePackageData,
		Requires:           p.Requires,
		TestRequires:       p.TestRequires,
	}

	for _, ep := range p.EntryPoints {
		desc.EntryPoints = append(desc.EntryPoints, entities.EntryPoint{
			Command: ep.Command,
			Target:  ep.Target,
		})
	}

	if p.Test != nil {
		desc.Test = entities.TestSettings{
			Runner:    p.Test.Runner,
			TestsDir:  p.Test.TestsDir,
			CovTarget: p.Test.CovTarget,
			ReportDir: p.Test.ReportDir,
		}
	}

	return desc
}
