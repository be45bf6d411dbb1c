package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/christiantyemele/rtop/internal/metrics"
)

// DefaultTickInterval is the render cadence (~60 fps).
const DefaultTickInterval = 16 * time.Millisecond

// SnapshotReader is the render loop's view of the sampler hand-off.
// Implementations must never block on the producer.
type SnapshotReader interface {
	// Since returns the newest snapshot if its Seq is greater than seq.
	Since(seq uint64) (metrics.Snapshot, bool)
	// Closed reports whether the producer has finished.
	Closed() bool
	// Err is the reason the producer finished, nil for a clean stop.
	Err() error
}

// Model is the Bubble Tea model for the dashboard. Bubble Tea drives it
// from a single goroutine, which makes it the render loop: every tickMsg
// polls the reader once and every key press becomes an Intent.
type Model struct {
	state  AppState
	reader SnapshotReader

	interval time.Duration
	title    string
	ticks    int
	lastTick time.Time
	stale    error // producer failure, shown next to the data

	width  int
	height int

	gauge progress.Model
	help  help.Model
}

// tickMsg signals a render tick.
type tickMsg time.Time

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTickInterval sets the render tick. Non-positive values are ignored.
func WithTickInterval(d time.Duration) ModelOption {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithTitle sets the header title.
func WithTitle(title string) ModelOption {
	return func(m *Model) {
		if title != "" {
			m.title = title
		}
	}
}

// NewModel creates a dashboard model reading snapshots from reader.
func NewModel(reader SnapshotReader, opts ...ModelOption) Model {
	m := Model{
		state:    NewAppState(),
		reader:   reader,
		interval: DefaultTickInterval,
		title:    "rtop",
		gauge: progress.New(
			progress.WithSolidFill(string(ColorHealthy)),
			progress.WithoutPercentage(),
		),
		help: help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init schedules the first tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and returns the next model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		intent := IntentFromKey(msg)
		wasExiting := m.state.Exit
		m.state = m.state.Apply(intent)
		if m.state.Exit && !wasExiting {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if m.state.Exit {
			return m, nil
		}
		m.poll(time.Time(msg))
		return m, m.tickCmd()
	}

	return m, nil
}

// poll takes whatever the sampler has published since the last tick.
// It never waits: with nothing new the previous snapshot stays on screen.
func (m *Model) poll(now time.Time) {
	m.ticks++
	m.lastTick = now

	if snap, ok := m.reader.Since(m.state.Seq()); ok {
		m.state = m.state.Observe(snap)
	}
	if m.reader.Closed() {
		m.stale = m.reader.Err()
	}
}

// View renders the dashboard.
func (m Model) View() string {
	if m.state.Exit {
		return ""
	}
	return m.renderDashboard()
}

// State returns the current AppState.
func (m Model) State() AppState {
	return m.state
}

// Ticks returns how many render ticks have been processed.
func (m Model) Ticks() int {
	return m.ticks
}

// tickCmd returns a command that sends a tick after the render interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// heartbeatFrame returns the current heartbeat glyph. The frame advances at
// Heartbeat.FPS regardless of the tick interval.
func (m Model) heartbeatFrame() string {
	step := int(Heartbeat.FPS / m.interval)
	if step < 1 {
		step = 1
	}
	return Heartbeat.Frames[(m.ticks/step)%len(Heartbeat.Frames)]
}

// sampleAge returns how old the held snapshot was at the last tick.
func (m Model) sampleAge() (time.Duration, bool) {
	if !m.state.HasSnapshot || m.state.Snapshot.Taken.IsZero() || m.lastTick.IsZero() {
		return 0, false
	}
	return m.lastTick.Sub(m.state.Snapshot.Taken), true
}
