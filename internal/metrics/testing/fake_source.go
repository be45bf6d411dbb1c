// Package testing provides test doubles for the metrics package.
package testing

import (
	"context"
	"sync"

	"github.com/christiantyemele/rtop/internal/metrics"
)

// FakeSource returns scripted snapshots from Refresh.
type FakeSource struct {
	mu sync.Mutex

	// Snapshots are returned in order. Once exhausted the last one repeats,
	// or Err is returned if FailWhenExhausted is set.
	Snapshots         []metrics.Snapshot
	FailWhenExhausted bool
	Err               error

	// Block, if set, makes Refresh wait for a value (or ctx) before returning.
	Block chan struct{}

	calls int
}

// NewFakeSource creates a fake that returns the given snapshots in order.
func NewFakeSource(snaps ...metrics.Snapshot) *FakeSource {
	return &FakeSource{Snapshots: snaps}
}

// Refresh implements metrics.Source.
func (f *FakeSource) Refresh(ctx context.Context) (metrics.Snapshot, error) {
	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return metrics.Snapshot{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.calls
	f.calls++

	if idx >= len(f.Snapshots) {
		if f.FailWhenExhausted || len(f.Snapshots) == 0 {
			return metrics.Snapshot{}, f.Err
		}
		idx = len(f.Snapshots) - 1
	}
	return f.Snapshots[idx].Clone(), nil
}

// Calls returns how many times Refresh has been called.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// MemorySnapshot builds a snapshot with the given memory figures and one
// core per usage value.
func MemorySnapshot(total, used uint64, usages ...float64) metrics.Snapshot {
	snap := metrics.Snapshot{
		Memory: metrics.MemoryReading{TotalBytes: total, UsedBytes: used},
	}
	for i, u := range usages {
		snap.CPUs = append(snap.CPUs, metrics.CPUReading{
			Core:         i,
			Brand:        "GenuineIntel",
			ModelName:    "Test CPU",
			UsagePercent: u,
			FrequencyMHz: 2000,
		})
	}
	snap.Host.LogicalCPUs = len(snap.CPUs)
	return snap
}
