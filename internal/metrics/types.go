// Package metrics reads point-in-time host telemetry.
//
// A Source produces one Snapshot per Refresh call. Every field of a Snapshot
// comes from the same refresh pass; snapshots are treated as immutable values
// once they leave the source.
package metrics

import "time"

// CPUReading is a single logical core's state for one refresh pass.
type CPUReading struct {
	Core         int     `yaml:"core"`
	Brand        string  `yaml:"brand"`
	ModelName    string  `yaml:"model_name"`
	UsagePercent float64 `yaml:"usage_percent"` // 0-100
	FrequencyMHz uint64  `yaml:"frequency_mhz"`
}

// MemoryReading holds physical memory figures in bytes.
// UsedBytes never exceeds TotalBytes.
type MemoryReading struct {
	TotalBytes uint64 `yaml:"total_bytes"`
	UsedBytes  uint64 `yaml:"used_bytes"`
}

// FreeBytes returns TotalBytes - UsedBytes.
func (m MemoryReading) FreeBytes() uint64 {
	if m.UsedBytes > m.TotalBytes {
		return 0
	}
	return m.TotalBytes - m.UsedBytes
}

// Available reports whether the reading carries a usable total.
// A zero total means the figures have not been read yet.
func (m MemoryReading) Available() bool {
	return m.TotalBytes > 0
}

// HostInfo contains general information about the sampled machine.
type HostInfo struct {
	Hostname      string        `yaml:"hostname"`
	Platform      string        `yaml:"platform"`
	KernelVersion string        `yaml:"kernel_version"`
	Uptime        time.Duration `yaml:"uptime"`
	LogicalCPUs   int           `yaml:"logical_cpus"`
}

// Snapshot is one consistent bundle of CPU and memory readings.
type Snapshot struct {
	// Seq is assigned on publication, starting at 1. Zero means unpublished.
	Seq    uint64        `yaml:"seq"`
	Taken  time.Time     `yaml:"taken"`
	CPUs   []CPUReading  `yaml:"cpus"`
	Memory MemoryReading `yaml:"memory"`
	Host   HostInfo      `yaml:"host"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.CPUs != nil {
		out.CPUs = make([]CPUReading, len(s.CPUs))
		copy(out.CPUs, s.CPUs)
	}
	return out
}

// AverageUsage returns the mean usage across all cores, or 0 with no cores.
func (s Snapshot) AverageUsage() float64 {
	if len(s.CPUs) == 0 {
		return 0
	}
	var total float64
	for _, c := range s.CPUs {
		total += c.UsagePercent
	}
	return total / float64(len(s.CPUs))
}
