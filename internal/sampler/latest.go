package sampler

import (
	"sync"

	"github.com/christiantyemele/rtop/internal/metrics"
)

// Latest is a single-slot, latest-value-wins hand-off between one writer
// and any number of readers.
//
// Publish replaces the whole snapshot under the write lock, so a reader
// always copies out a snapshot from exactly one refresh pass. Readers that
// fall behind skip intermediate snapshots; Seq only ever increases.
type Latest struct {
	mu     sync.RWMutex
	snap   metrics.Snapshot
	seq    uint64
	closed bool
	err    error
}

// NewLatest creates an empty cell. Load reports false until the first Publish.
func NewLatest() *Latest {
	return &Latest{}
}

// Publish stores a copy of s as the newest snapshot and returns the
// sequence number assigned to it. Publishing to a closed cell is a no-op
// and returns 0.
func (l *Latest) Publish(s metrics.Snapshot) uint64 {
	s = s.Clone()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0
	}
	l.seq++
	s.Seq = l.seq
	l.snap = s
	return l.seq
}

// Load returns a copy of the newest snapshot, or false if nothing has been
// published yet.
func (l *Latest) Load() (metrics.Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.seq == 0 {
		return metrics.Snapshot{}, false
	}
	return l.snap.Clone(), true
}

// Since returns the newest snapshot only if it is newer than seq.
// Callers pass the Seq of the last snapshot they consumed (0 for none).
func (l *Latest) Since(seq uint64) (metrics.Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.seq <= seq {
		return metrics.Snapshot{}, false
	}
	return l.snap.Clone(), true
}

// Seq returns the sequence number of the newest snapshot (0 if none).
func (l *Latest) Seq() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seq
}

// Close marks the writer as finished. err is the reason, nil for a clean
// stop. The last published snapshot stays readable. Only the first Close
// is recorded.
func (l *Latest) Close(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	l.err = err
}

// Closed reports whether the writer has finished.
func (l *Latest) Closed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.closed
}

// Err returns the error the writer finished with, if any.
func (l *Latest) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}
