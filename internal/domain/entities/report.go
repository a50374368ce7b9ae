package entities

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
)

const (
	coverageHTMLName = "coverage_html"
	coverageXMLName  = "coverage.xml"
	junitXMLName     = "report.xml"
)

// ReportLayout derives the three report artifact paths from a single
// report directory, keeping them consistent by construction.
type ReportLayout struct {
	Dir string
}

// NewReportLayout creates a layout rooted at the given directory.
func NewReportLayout(dir string) ReportLayout {
	return ReportLayout{Dir: dir}
}

// CoverageHTMLDir is the human-readable coverage report tree.
func (l ReportLayout) CoverageHTMLDir() string {
	return filepath.Join(l.Dir, coverageHTMLName)
}

// CoverageXML is the machine-readable (Cobertura-style) coverage report.
func (l ReportLayout) CoverageXML() string {
	return filepath.Join(l.Dir, coverageXMLName)
}

// JUnitXML is the machine-readable test-result report.
func (l ReportLayout) JUnitXML() string {
	return filepath.Join(l.Dir, junitXMLName)
}

// Artifacts lists all three derived paths.
func (l ReportLayout) Artifacts() []string {
	return []string{l.CoverageHTMLDir(), l.CoverageXML(), l.JUnitXML()}
}

// TestRun describes one invocation of the external test engine.
type TestRun struct {
	ProjectDir string
	Settings   TestSettings
	Layout     ReportLayout
}

// JUnitSuite is one testsuite element of a JUnit-style result report.
type JUnitSuite struct {
	Name     string  `xml:"name,attr"`
	Tests    int     `xml:"tests,attr"`
	Failures int     `xml:"failures,attr"`
	Errors   int     `xml:"errors,attr"`
	Skipped  int     `xml:"skipped,attr"`
	Time     float64 `xml:"time,attr"`
}

// JUnitReport is the parsed form of a JUnit-style XML report.
type JUnitReport struct {
	Suites []JUnitSuite
}

// JUnitTotals aggregates counts across all suites of a report.
type JUnitTotals struct {
	Tests    int
	Failures int
	Errors   int
	Skipped  int
	Time     float64
}

// Passed is the number of test cases that ran and succeeded.
func (t JUnitTotals) Passed() int {
	return t.Tests - t.Failures - t.Errors - t.Skipped
}

// String renders the totals the way the engine's own summary line does.
func (t JUnitTotals) String() string {
	return fmt.Sprintf(
		"%d passed, %d failed, %d errors, %d skipped in %.2fs",
		t.Passed(), t.Failures, t.Errors, t.Skipped, t.Time,
	)
}

// ParseJUnitReport parses a JUnit-style XML document. Both root layouts
// are accepted: a <testsuites> wrapper (modern pytest) and a bare
// <testsuite> root (older engines).
func ParseJUnitReport(data []byte) (*JUnitReport, error) {
	var doc struct {
		XMLName xml.Name
		Suites  []JUnitSuite `xml:"testsuite"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JUnit report: %w", err)
	}

	switch doc.XMLName.Local {
	case "testsuites":
		return &JUnitReport{Suites: doc.Suites}, nil
	case "testsuite":
		var suite JUnitSuite
		if err := xml.Unmarshal(data, &suite); err != nil {
			return nil, fmt.Errorf("failed to parse JUnit report: %w", err)
		}
		return &JUnitReport{Suites: []JUnitSuite{suite}}, nil
	default:
		return nil, fmt.Errorf("unexpected JUnit root element %q", doc.XMLName.Local)
	}
}

// Totals sums the per-suite counts.
func (r *JUnitReport) Totals() JUnitTotals {
	var totals JUnitTotals
	for _, s := range r.Suites {
		totals.Tests += s.Tests
		totals.Failures += s.Failures
		totals.Errors += s.Errors
		totals.Skipped += s.Skipped
		totals.Time += s.Time
	}
	return totals
}
