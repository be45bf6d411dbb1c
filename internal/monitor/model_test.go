package monitor

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christiantyemele/rtop/internal/metrics"
	metricstest "github.com/christiantyemele/rtop/internal/metrics/testing"
	"github.com/christiantyemele/rtop/internal/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingReader wraps a real cell and counts polls.
type countingReader struct {
	*sampler.Latest
	polls int
}

func (r *countingReader) Since(seq uint64) (metrics.Snapshot, bool) {
	r.polls++
	return r.Latest.Since(seq)
}

func newTestModel(t *testing.T) (Model, *countingReader) {
	t.Helper()
	reader := &countingReader{Latest: sampler.NewLatest()}
	return NewModel(reader, WithTickInterval(time.Millisecond)), reader
}

func tick(m Model, at time.Time) (Model, tea.Cmd) {
	next, cmd := m.Update(tickMsg(at))
	return next.(Model), cmd
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, time.Millisecond, m.interval)
	assert.Equal(t, "rtop", m.title)
	assert.False(t, m.State().HasSnapshot)
	assert.Zero(t, m.Ticks())
}

func TestNewModel_Options(t *testing.T) {
	m := NewModel(sampler.NewLatest(), WithTitle("box"), WithTickInterval(0))

	assert.Equal(t, "box", m.title)
	assert.Equal(t, DefaultTickInterval, m.interval, "non-positive interval ignored")
}

func TestModel_InitSchedulesTick(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.Init()
	require.NotNil(t, cmd)
	_, ok := cmd().(tickMsg)
	assert.True(t, ok)
}

func TestModel_TickConsumesLatestSnapshot(t *testing.T) {
	m, reader := newTestModel(t)

	for i := uint64(1); i <= 5; i++ {
		reader.Publish(metricstest.MemorySnapshot(100, i*10))
	}

	m, cmd := tick(m, time.Now())
	require.NotNil(t, cmd, "next tick is always scheduled")

	st := m.State()
	require.True(t, st.HasSnapshot)
	assert.Equal(t, uint64(5), st.Seq(), "renderer sees the newest snapshot, skipping older ones")
	assert.Equal(t, uint64(50), st.Snapshot.Memory.UsedBytes)
	assert.Equal(t, 1, reader.polls)
}

func TestModel_TicksContinueWithoutNewData(t *testing.T) {
	m, reader := newTestModel(t)
	reader.Publish(metricstest.MemorySnapshot(100, 10))

	now := time.Now()
	for i := 0; i < 50; i++ {
		var cmd tea.Cmd
		m, cmd = tick(m, now.Add(time.Duration(i)*time.Millisecond))
		require.NotNil(t, cmd)
	}

	assert.Equal(t, 50, m.Ticks())
	assert.Equal(t, uint64(1), m.State().Seq(), "stale snapshot keeps being shown")
}

func TestModel_TicksWithNoSnapshotAtAll(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := tick(m, time.Now())
	require.NotNil(t, cmd)
	assert.False(t, m.State().HasSnapshot)
	assert.Contains(t, m.View(), "metrics unavailable")
}

func TestModel_QuitKey(t *testing.T) {
	m, reader := newTestModel(t)

	m, cmd := press(m, runeKey('q'))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.True(t, m.State().Exit)

	// A second q does not quit again.
	m, cmd = press(m, runeKey('q'))
	assert.Nil(t, cmd)
	assert.True(t, m.State().Exit)

	// No further snapshots are consumed after exit.
	reader.Publish(metricstest.MemorySnapshot(100, 10))
	m, cmd = tick(m, time.Now())
	assert.Nil(t, cmd, "no tick is rescheduled after exit")
	assert.Zero(t, reader.polls)
	assert.False(t, m.State().HasSnapshot)

	assert.Empty(t, m.View())
}

func TestModel_PrintableKeyRecorded(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(m, runeKey('x'))
	assert.Nil(t, cmd)
	assert.Equal(t, 'x', m.State().LastKey)
	assert.False(t, m.State().Exit)
}

func TestModel_IgnoredInput(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.State()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	next, cmd = next.Update(tea.MouseMsg{X: 3, Y: 4})
	assert.Nil(t, cmd)

	assert.Equal(t, before, next.(Model).State())
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)

	nm := next.(Model)
	assert.Equal(t, 120, nm.width)
	assert.Equal(t, 40, nm.height)
	assert.Equal(t, 120, nm.help.Width)
}

func TestModel_SamplerFailureMarksStale(t *testing.T) {
	m, reader := newTestModel(t)
	reader.Publish(metricstest.MemorySnapshot(100, 10))
	reader.Close(assert.AnError)

	m, cmd := tick(m, time.Now())
	require.NotNil(t, cmd, "render loop keeps going after the sampler dies")

	assert.Equal(t, assert.AnError, m.stale)
	assert.True(t, m.State().HasSnapshot)
	assert.Contains(t, m.View(), "stale")
}

func TestModel_CleanCloseIsNotStale(t *testing.T) {
	m, reader := newTestModel(t)
	reader.Close(nil)

	m, _ = tick(m, time.Now())
	assert.NoError(t, m.stale)
}

func TestModel_HeartbeatAdvances(t *testing.T) {
	m := NewModel(sampler.NewLatest(), WithTickInterval(Heartbeat.FPS))

	seen := map[string]bool{}
	now := time.Now()
	for i := 0; i < len(Heartbeat.Frames); i++ {
		seen[m.heartbeatFrame()] = true
		m, _ = tick(m, now)
	}
	assert.Len(t, seen, len(Heartbeat.Frames))
}

func TestModel_SampleAge(t *testing.T) {
	m, reader := newTestModel(t)

	_, ok := m.sampleAge()
	assert.False(t, ok)

	taken := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := metricstest.MemorySnapshot(100, 1)
	snap.Taken = taken
	reader.Publish(snap)

	m, _ = tick(m, taken.Add(30*time.Millisecond))
	age, ok := m.sampleAge()
	require.True(t, ok)
	assert.Equal(t, 30*time.Millisecond, age)
}

// Sampler and render loop wired together the way the CLI does it.
func TestModel_WithRunningSampler(t *testing.T) {
	src := metricstest.NewFakeSource(metricstest.MemorySnapshot(1000, 250, 40, 60))
	cell := sampler.NewLatest()
	s := sampler.New(src, cell, sampler.WithInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	m := NewModel(cell, WithTickInterval(time.Millisecond))
	require.Eventually(t, func() bool {
		m, _ = tick(m, time.Now())
		return m.State().Seq() >= 3
	}, time.Second, time.Millisecond)

	pct, ok := m.State().MemoryPercent()
	require.True(t, ok)
	assert.Equal(t, 25, pct)
}
