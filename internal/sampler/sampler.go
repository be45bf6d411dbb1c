// Package sampler runs the background refresh loop that feeds the dashboard.
//
// A Sampler owns its metrics.Source exclusively once started: no other
// goroutine calls Refresh on it. Each pass is published to a Latest cell,
// which is the only state shared with the render loop.
package sampler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/christiantyemele/rtop/internal/errors"
	"github.com/christiantyemele/rtop/internal/logger"
	"github.com/christiantyemele/rtop/internal/metrics"
)

// DefaultInterval is the refresh cadence when none is configured.
const DefaultInterval = 50 * time.Millisecond

// State is the lifecycle state of a Sampler.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Sampler refreshes a source on a fixed interval and publishes each
// snapshot to a Latest cell.
type Sampler struct {
	source   metrics.Source
	cell     *Latest
	interval time.Duration
	log      logger.Logger

	state     atomic.Int32
	published atomic.Uint64

	mu     sync.Mutex // guards cancel, err
	cancel context.CancelFunc
	err    error
	done   chan struct{}
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithInterval sets the refresh interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Sampler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the logger for lifecycle and failure messages.
func WithLogger(l logger.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an idle sampler that will publish to cell.
func New(source metrics.Source, cell *Latest, opts ...Option) *Sampler {
	s := &Sampler{
		source:   source,
		cell:     cell,
		interval: DefaultInterval,
		log:      logger.Noop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the refresh loop. The first refresh happens immediately.
// The loop runs until ctx is cancelled, Stop is called, or a refresh fails.
// Start may only be called once.
func (s *Sampler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.State(); st != StateIdle {
		return errors.New(errors.ErrSampler,
			"Sampler can't start from state "+st.String(),
			"Create a new sampler for each run")
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state.Store(int32(StateRunning))

	s.log.Debug("sampler started (interval %s)", s.interval)
	go s.run(ctx)
	return nil
}

// Stop signals the loop to exit and waits for it. It is safe to call more
// than once, and before Start.
func (s *Sampler) Stop() {
	s.mu.Lock()
	if s.State() == StateIdle {
		s.state.Store(int32(StateStopped))
		s.cell.Close(nil)
		close(s.done)
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-s.done
}

// Done is closed once the loop has exited.
func (s *Sampler) Done() <-chan struct{} {
	return s.done
}

// Err returns the refresh error that ended the loop, if any.
func (s *Sampler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// State returns the current lifecycle state.
func (s *Sampler) State() State {
	return State(s.state.Load())
}

// Published returns the number of snapshots published so far.
func (s *Sampler) Published() uint64 {
	return s.published.Load()
}

func (s *Sampler) run(ctx context.Context) {
	defer func() {
		s.state.Store(int32(StateStopped))
		close(s.done)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		snap, err := s.source.Refresh(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.stopped()
				return
			}
			s.fail(err)
			return
		}

		seq := s.cell.Publish(snap)
		s.published.Add(1)
		s.log.Debug("published snapshot %d (%d cores)", seq, len(snap.CPUs))

		select {
		case <-ctx.Done():
			s.stopped()
			return
		case <-ticker.C:
		}
	}
}

func (s *Sampler) stopped() {
	s.log.Debug("sampler stopped after %d snapshots", s.published.Load())
	s.cell.Close(nil)
}

// fail records a fatal refresh error. No retry: the cell keeps serving the
// last good snapshot.
func (s *Sampler) fail(err error) {
	if !errors.IsCode(err, errors.ErrSource) {
		err = errors.Wrap(err, "Metrics source failed")
	}

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	s.log.Error("sampler stopped: %v", err)
	s.cell.Close(err)
}
