package pytest

import "io"

// BuildArgs exports buildArgs for testing.
var BuildArgs = buildArgs //nolint:gochecknoglobals // test export

// NewEngineRepositoryWithStreams creates an engine repository with custom
// output streams for testing.
func NewEngineRepositoryWithStreams(stdout, stderr io.Writer) *EngineRepository {
	return &EngineRepository{stdout: stdout, stderr: stderr}
}
