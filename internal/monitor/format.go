package monitor

import (
	"fmt"
	"math"
	"time"
)

// Binary byte units.
const (
	kib = 1024
	mib = kib * 1024
	gib = mib * 1024
)

// FormatBytes formats a byte count with 1024-based units, two decimals
// above the byte tier: 512 -> "512 bytes", 2048 -> "2.00 KB".
func FormatBytes(bytes uint64) string {
	switch {
	case bytes >= gib:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gib)
	case bytes >= mib:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mib)
	case bytes >= kib:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kib)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// UsagePercent returns round(used / total * 100). ok is false when total
// is zero, in which case the figure must not be shown.
func UsagePercent(used, total uint64) (percent int, ok bool) {
	if total == 0 {
		return 0, false
	}
	return int(math.Round(float64(used) / float64(total) * 100)), true
}

// FormatMHz formats a clock frequency, switching to GHz at 1000 MHz.
func FormatMHz(mhz uint64) string {
	switch {
	case mhz == 0:
		return "n/a"
	case mhz >= 1000:
		return fmt.Sprintf("%.2f GHz", float64(mhz)/1000)
	default:
		return fmt.Sprintf("%d MHz", mhz)
	}
}

// formatUptime renders an uptime as "3d 4h", "4h 12m" or "12m".
func formatUptime(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// formatAge renders how long ago a sample was taken.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "just now"
	case d < time.Second:
		return fmt.Sprintf("%dms ago", d.Milliseconds())
	default:
		return fmt.Sprintf("%.1fs ago", d.Seconds())
	}
}
