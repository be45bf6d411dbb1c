// Package monitor implements the live TUI dashboard for local host metrics.
//
// The dashboard displays per-core CPU usage and frequency plus memory usage,
// refreshed from a background sampler while staying responsive to input.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: wraps AppState (exit flag, last key, latest snapshot)
//   - Update: processes key presses, window resizes and render ticks
//   - View: renders the current state to a string for display
//
// # Message Flow
//
// The sampler publishes snapshots to a latest-value cell on its own
// goroutine. The dashboard never waits for it:
//
//  1. tickMsg fires every render interval (default 16ms)
//  2. Update asks the reader for anything newer than the held snapshot
//  3. If there is, AppState.Observe swaps it in; otherwise the old one stays
//  4. View() re-renders with whatever is held
//
// A sampler that dies leaves the last snapshot on screen, flagged stale.
//
// # Keyboard
//
//	q, Ctrl+C   - Quit
//	any other   - Recorded and shown in the header as a liveness check
package monitor
