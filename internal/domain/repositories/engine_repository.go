package repositories

import (
	"context"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

// TestEngineRepository abstracts the external test-execution engine.
// The engine owns test discovery, coverage instrumentation, and report
// writing; this layer only launches it and relays its exit status.
type TestEngineRepository interface {
	// Run launches the engine synchronously and returns its exit status.
	// A non-nil error means the engine could not be started at all;
	// test failures are reported through the status code, not the error.
	Run(ctx context.Context, run entities.TestRun) (int, error)
}
