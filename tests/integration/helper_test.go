package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/christiantyemele/rtop/internal/logger"
	"github.com/christiantyemele/rtop/internal/metrics"
)

// RequireHostMetrics skips the test when live host metrics shouldn't be read,
// e.g. in -short runs or sandboxes without /proc.
func RequireHostMetrics(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping: reads live host metrics")
	}
	if os.Getenv("RTOP_SKIP_HOST_TESTS") != "" {
		t.Skip("Skipping: RTOP_SKIP_HOST_TESTS set")
	}
}

// NewHostSource returns a real source that logs into a buffer.
func NewHostSource(t *testing.T) (*metrics.HostSource, *logger.BufferLogger) {
	t.Helper()
	RequireHostMetrics(t)
	log := logger.NewBufferLogger()
	return metrics.NewHostSource(log), log
}

// testContext returns a context bounded for live reads.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
