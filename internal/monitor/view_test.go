package monitor

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/christiantyemele/rtop/internal/metrics"
	metricstest "github.com/christiantyemele/rtop/internal/metrics/testing"
	"github.com/christiantyemele/rtop/internal/sampler"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Plain text output so assertions can match rendered strings.
	lipgloss.SetColorProfile(termenv.Ascii)
}

// modelWith returns a model that has consumed snap on one tick.
func modelWith(t *testing.T, snap metrics.Snapshot, width, height int) Model {
	t.Helper()
	cell := sampler.NewLatest()
	cell.Publish(snap)

	m := NewModel(cell)
	next, _ := m.Update(windowSize(width, height))
	m, _ = tick(next.(Model), time.Now())
	require.True(t, m.State().HasSnapshot)
	return m
}

func windowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

func TestView_NoSnapshot(t *testing.T) {
	m := NewModel(sampler.NewLatest())
	view := m.View()

	assert.Contains(t, view, "rtop")
	assert.Contains(t, view, "waiting for first sample")
	assert.Contains(t, view, "metrics unavailable")
	assert.Contains(t, view, "key ' '")
	assert.NotContains(t, view, "Total")
}

func TestView_Memory(t *testing.T) {
	snap := metricstest.MemorySnapshot(8*1024*1024*1024, 2*1024*1024*1024, 10)
	m := modelWith(t, snap, 100, 40)
	view := m.View()

	assert.Contains(t, view, "Memory")
	assert.Contains(t, view, "25%")
	assert.Contains(t, view, "8.00 GB")
	assert.Contains(t, view, "2.00 GB")
	assert.Contains(t, view, "6.00 GB")
	assert.Contains(t, view, "Usage")
}

func TestView_ZeroTotalShowsPlaceholder(t *testing.T) {
	snap := metricstest.MemorySnapshot(0, 0, 10)
	m := modelWith(t, snap, 100, 40)
	view := m.View()

	assert.Contains(t, view, "metrics unavailable")
	assert.NotContains(t, view, "Total")
	assert.Contains(t, view, "cpu0", "cores still render")
}

func TestView_Cores(t *testing.T) {
	snap := metricstest.MemorySnapshot(1024, 512, 12.5, 75, 95)
	m := modelWith(t, snap, 120, 40)
	view := m.View()

	assert.Contains(t, view, "GenuineIntel · Test CPU")
	assert.Contains(t, view, "avg 61%")
	for _, want := range []string{"cpu0", "cpu1", "cpu2", "12.5%", "75.0%", "95.0%", "2.00 GHz"} {
		assert.Contains(t, view, want)
	}
}

func TestView_TruncatesCoresToHeight(t *testing.T) {
	usages := make([]float64, 64)
	snap := metricstest.MemorySnapshot(1024, 512, usages...)

	// 80 wide fits two core columns, 18 tall leaves three core rows
	// plus the overflow line.
	m := modelWith(t, snap, 80, 18)
	view := m.View()

	assert.Contains(t, view, "cpu0 ")
	assert.Contains(t, view, "cpu5 ")
	assert.NotContains(t, view, "cpu6 ")
	assert.Contains(t, view, "… 58 more cores")
}

func TestView_AllCoresWhenHeightUnknown(t *testing.T) {
	usages := make([]float64, 16)
	snap := metricstest.MemorySnapshot(1024, 512, usages...)

	cell := sampler.NewLatest()
	cell.Publish(snap)
	m, _ := tick(NewModel(cell), time.Now())
	view := m.View()

	assert.Contains(t, view, "cpu15")
	assert.NotContains(t, view, "more cores")
}

func TestView_LinesFitWidth(t *testing.T) {
	snap := metricstest.MemorySnapshot(1<<30, 1<<29, 10, 20, 30, 40)
	m := modelWith(t, snap, 90, 40)

	// Section lines are drawn to the terminal width.
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.HasPrefix(line, "│") || strings.HasPrefix(line, "╭") || strings.HasPrefix(line, "╰") {
			assert.Equal(t, 90, lipgloss.Width(line), line)
		}
	}
}

func TestView_Header(t *testing.T) {
	snap := metricstest.MemorySnapshot(1024, 512, 1)
	snap.Host = metrics.HostInfo{Hostname: "devbox", Platform: "ubuntu", Uptime: 90 * time.Minute}
	snap.Taken = time.Now()
	m := modelWith(t, snap, 120, 40)

	m, _ = press(m, runeKey('x'))
	view := m.View()

	assert.Contains(t, view, "devbox (ubuntu)")
	assert.Contains(t, view, "up 1h 30m")
	assert.Contains(t, view, "key 'x'")
	assert.Contains(t, view, "sample ")
	assert.NotContains(t, view, "stale")
}

func TestView_Stale(t *testing.T) {
	cell := sampler.NewLatest()
	cell.Publish(metricstest.MemorySnapshot(1024, 512, 1))
	cell.Close(assert.AnError)

	m, _ := tick(NewModel(cell), time.Now())
	view := m.View()

	assert.Contains(t, view, "stale: sampler stopped")
	assert.Contains(t, view, "50%", "last good snapshot stays on screen")
}

func TestView_Footer(t *testing.T) {
	m := NewModel(sampler.NewLatest())
	footer := m.renderFooter()

	assert.Contains(t, footer, "q")
	assert.Contains(t, footer, "quit")
	assert.Contains(t, footer, "any key")
}

func TestCPUModelLine(t *testing.T) {
	assert.Equal(t, "AMD · Ryzen", cpuModelLine(metrics.CPUReading{Brand: "AMD", ModelName: "Ryzen"}))
	assert.Equal(t, "Ryzen", cpuModelLine(metrics.CPUReading{ModelName: "Ryzen"}))
	assert.Equal(t, "AMD", cpuModelLine(metrics.CPUReading{Brand: "AMD"}))
	assert.Empty(t, cpuModelLine(metrics.CPUReading{}))
}
