package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/christiantyemele/rtop/internal/metrics"
	"github.com/christiantyemele/rtop/internal/util"
)

const (
	defaultWidth = 80
	minCoreCell  = 36
	labelWidth   = 7
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	width := m.contentWidth()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderMemory(width))
	b.WriteString("\n")
	b.WriteString(m.renderCPU(width))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// contentWidth is the section width for the current terminal.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// renderHeader renders the title line with host details and liveness markers.
func (m Model) renderHeader() string {
	parts := []string{TitleStyle.Render(m.title)}

	if m.state.HasSnapshot {
		h := m.state.Snapshot.Host
		if h.Hostname != "" {
			host := h.Hostname
			if h.Platform != "" {
				host += " (" + h.Platform + ")"
			}
			parts = append(parts, ValueStyle.Render(host))
		}
		if up := formatUptime(h.Uptime); up != "" {
			parts = append(parts, LabelStyle.Render("up "+up))
		}
	}

	parts = append(parts, KeyStyle.Render(m.heartbeatFrame()))
	parts = append(parts, LabelStyle.Render("key ")+KeyStyle.Render(fmt.Sprintf("%q", m.state.LastKey)))

	if age, ok := m.sampleAge(); ok {
		parts = append(parts, LabelStyle.Render("sample "+formatAge(age)))
	} else {
		parts = append(parts, MutedStyle.Render("waiting for first sample"))
	}

	if m.stale != nil {
		parts = append(parts, StaleStyle.Render("stale: sampler stopped"))
	}

	sep := MutedStyle.Render(" | ")
	return HeaderStyle.Render(strings.Join(parts, sep))
}

// renderMemory renders the memory section, or a placeholder when there is
// no usable total yet.
func (m Model) renderMemory(width int) string {
	pct, ok := m.state.MemoryPercent()
	if !ok {
		return strings.Join([]string{
			SectionHeader("Memory", "--", width),
			SectionContentLine(MutedStyle.Render("metrics unavailable"), width),
			SectionFooter(width),
		}, "\n")
	}

	mem := m.state.Snapshot.Memory
	lines := []string{
		SectionHeader("Memory", fmt.Sprintf("%d%%", pct), width),
		SectionContentLine(memoryRow("Total", FormatBytes(mem.TotalBytes)), width),
		SectionContentLine(memoryRow("Used", FormatBytes(mem.UsedBytes)), width),
		SectionContentLine(memoryRow("Free", FormatBytes(mem.FreeBytes())), width),
		SectionContentLine(m.renderGauge(pct, width-4), width),
		SectionFooter(width),
	}
	return strings.Join(lines, "\n")
}

func memoryRow(label, value string) string {
	return LabelStyle.Width(labelWidth).Render(label) + ValueStyle.Render(value)
}

// renderGauge renders "Usage NN% <bar>" filling inner width.
func (m Model) renderGauge(pct int, inner int) string {
	prefix := LabelStyle.Width(labelWidth).Render("Usage") +
		MetricStyle(float64(pct)).Render(fmt.Sprintf("%3d%%", pct)) + " "

	barWidth := inner - lipgloss.Width(prefix)
	if barWidth < 1 {
		barWidth = 1
	}

	g := m.gauge
	g.Width = barWidth
	g.FullColor = string(MetricColor(float64(pct)))
	return prefix + g.ViewAs(float64(pct)/100)
}

// renderCPU renders the per-core section in as many columns as fit.
func (m Model) renderCPU(width int) string {
	if !m.state.HasSnapshot || len(m.state.Snapshot.CPUs) == 0 {
		return strings.Join([]string{
			SectionHeader("CPU", "--", width),
			SectionContentLine(MutedStyle.Render("metrics unavailable"), width),
			SectionFooter(width),
		}, "\n")
	}

	snap := m.state.Snapshot
	lines := []string{
		SectionHeader("CPU", fmt.Sprintf("avg %.0f%%", snap.AverageUsage()), width),
	}
	if model := cpuModelLine(snap.CPUs[0]); model != "" {
		lines = append(lines, SectionContentLine(LabelStyle.Render(model), width))
	}

	inner := width - 4
	cols := inner / minCoreCell
	if cols < 1 {
		cols = 1
	}
	cellWidth := inner / cols

	rows := (len(snap.CPUs) + cols - 1) / cols
	hidden := 0
	if limit := m.coreRowLimit(); limit > 0 && rows > limit {
		hidden = len(snap.CPUs) - (limit-1)*cols
		rows = limit - 1
	}

	cell := lipgloss.NewStyle().Width(cellWidth)
	for r := 0; r < rows; r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if idx >= len(snap.CPUs) {
				break
			}
			cells = append(cells, cell.Render(coreCell(snap.CPUs[idx], cellWidth)))
		}
		lines = append(lines, SectionContentLine(lipgloss.JoinHorizontal(lipgloss.Top, cells...), width))
	}
	if hidden > 0 {
		lines = append(lines, SectionContentLine(MutedStyle.Render(fmt.Sprintf("… %d more %s", hidden, util.Pluralize(hidden, "core", "cores"))), width))
	}

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// coreRowLimit is how many core rows fit below the header and memory
// section, 0 when the height is not known yet.
func (m Model) coreRowLimit() int {
	if m.height <= 0 {
		return 0
	}
	// header(2) + memory(6) + cpu header/model/footer(3) + footer(1) + gaps(2)
	limit := m.height - 14
	if limit < 2 {
		limit = 2
	}
	return limit
}

func cpuModelLine(c metrics.CPUReading) string {
	switch {
	case c.Brand != "" && c.ModelName != "":
		return c.Brand + " · " + c.ModelName
	case c.ModelName != "":
		return c.ModelName
	default:
		return c.Brand
	}
}

// coreCell renders "cpuN <bar> NN.N% f.ff GHz" for one core.
func coreCell(c metrics.CPUReading, width int) string {
	label := LabelStyle.Render(fmt.Sprintf("cpu%-3d", c.Core))
	pct := MetricStyle(c.UsagePercent).Render(fmt.Sprintf("%5.1f%%", c.UsagePercent))
	freq := MutedStyle.Render(fmt.Sprintf("%9s", FormatMHz(c.FrequencyMHz)))

	// label(6) + spaces(3) + pct(6) + freq(9) + trailing gap(1)
	barWidth := width - 25
	if barWidth < 4 {
		barWidth = 4
	}
	return label + " " + ProgressBar(barWidth, c.UsagePercent) + " " + pct + " " + freq
}

// renderFooter renders the key help line.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.View(keys))
}
