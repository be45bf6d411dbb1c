package monitor

import "github.com/christiantyemele/rtop/internal/metrics"

// AppState is the UI-only state of the dashboard. It is a plain value owned
// by the render loop; Apply and Observe return the next state without
// touching the receiver.
type AppState struct {
	Exit        bool
	LastKey     rune
	Snapshot    metrics.Snapshot
	HasSnapshot bool
}

// NewAppState returns the startup state: no snapshot, blank last key.
func NewAppState() AppState {
	return AppState{LastKey: ' '}
}

// Apply folds a keyboard intent into the state. Once Exit is set further
// intents are ignored.
func (s AppState) Apply(in Intent) AppState {
	if s.Exit {
		return s
	}
	switch in.Kind {
	case IntentQuit:
		s.Exit = true
	case IntentKey:
		s.LastKey = in.Key
	}
	return s
}

// Observe replaces the held snapshot with snap if it is newer. Snapshots
// arriving after Exit, or out of order, are dropped.
func (s AppState) Observe(snap metrics.Snapshot) AppState {
	if s.Exit {
		return s
	}
	if s.HasSnapshot && snap.Seq <= s.Snapshot.Seq {
		return s
	}
	s.Snapshot = snap
	s.HasSnapshot = true
	return s
}

// Seq returns the sequence number of the held snapshot, 0 if none.
func (s AppState) Seq() uint64 {
	if !s.HasSnapshot {
		return 0
	}
	return s.Snapshot.Seq
}

// MemoryPercent returns the memory usage percentage of the held snapshot.
// ok is false when there is no snapshot or the total is unknown.
func (s AppState) MemoryPercent() (percent int, ok bool) {
	if !s.HasSnapshot {
		return 0, false
	}
	return UsagePercent(s.Snapshot.Memory.UsedBytes, s.Snapshot.Memory.TotalBytes)
}
