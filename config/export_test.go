package config

// ExpandValue exports expandValue for testing.
var ExpandValue = expandValue //nolint:gochecknoglobals // test export

// ParseHCL exports parseHCL for testing.
var ParseHCL = parseHCL //nolint:gochecknoglobals // test export
