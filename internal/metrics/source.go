package metrics

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/christiantyemele/rtop/internal/errors"
	"github.com/christiantyemele/rtop/internal/logger"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Source produces point-in-time host readings.
type Source interface {
	Refresh(ctx context.Context) (Snapshot, error)
}

// HostSource reads the local machine through gopsutil.
//
// Refresh calls are serialized: the per-core usage figures are deltas
// against the previous call, so two interleaved refreshes would corrupt
// each other's baseline.
type HostSource struct {
	mu sync.Mutex

	cpuInfo       func(context.Context) ([]cpu.InfoStat, error)
	cpuPercent    func(context.Context, time.Duration, bool) ([]float64, error)
	virtualMemory func(context.Context) (*mem.VirtualMemoryStat, error)
	hostInfo      func(context.Context) (*host.InfoStat, error)
	now           func() time.Time
	log           logger.Logger
}

// NewHostSource creates a source backed by the host OS.
func NewHostSource(log logger.Logger) *HostSource {
	if log == nil {
		log = logger.Noop()
	}
	return &HostSource{
		cpuInfo:       cpu.InfoWithContext,
		cpuPercent:    cpu.PercentWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		hostInfo:      host.InfoWithContext,
		now:           time.Now,
		log:           log,
	}
}

// Refresh reads every CPU and memory figure in one pass.
// CPU usage is measured since the previous Refresh (or since boot on the
// first call).
func (s *HostSource) Refresh(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	percents, err := s.cpuPercent(ctx, 0, true)
	if err != nil {
		return Snapshot{}, errors.WrapWithCode(err, errors.ErrSource,
			"Can't read CPU usage",
			"rtop needs read access to the kernel's CPU statistics (/proc/stat on Linux)")
	}

	infos, err := s.cpuInfo(ctx)
	if err != nil {
		return Snapshot{}, errors.WrapWithCode(err, errors.ErrSource,
			"Can't read CPU information",
			"rtop needs read access to /proc/cpuinfo or the platform equivalent")
	}

	vm, err := s.virtualMemory(ctx)
	if err != nil {
		return Snapshot{}, errors.WrapWithCode(err, errors.ErrSource,
			"Can't read memory statistics",
			"rtop needs read access to /proc/meminfo or the platform equivalent")
	}

	snap := Snapshot{
		Taken:  s.now(),
		CPUs:   buildCPUReadings(percents, infos),
		Memory: buildMemoryReading(vm),
		Host:   s.readHost(ctx),
	}
	snap.Host.LogicalCPUs = len(snap.CPUs)

	return snap, nil
}

// readHost collects hostname and uptime. Failures leave the fields empty.
func (s *HostSource) readHost(ctx context.Context) HostInfo {
	info, err := s.hostInfo(ctx)
	if err != nil || info == nil {
		s.log.Debug("host info unavailable: %v", err)
		return HostInfo{}
	}
	return HostInfo{
		Hostname:      info.Hostname,
		Platform:      info.Platform,
		KernelVersion: info.KernelVersion,
		Uptime:        time.Duration(info.Uptime) * time.Second,
	}
}

// buildCPUReadings pairs per-core usage with per-core static info.
// Platforms that report a single package entry (darwin) share it across cores.
func buildCPUReadings(percents []float64, infos []cpu.InfoStat) []CPUReading {
	readings := make([]CPUReading, len(percents))
	for i, pct := range percents {
		r := CPUReading{
			Core:         i,
			UsagePercent: clampPercent(pct),
		}

		var info *cpu.InfoStat
		switch {
		case i < len(infos):
			info = &infos[i]
		case len(infos) > 0:
			info = &infos[0]
		}
		if info != nil {
			r.Brand = info.VendorID
			r.ModelName = info.ModelName
			if info.Mhz > 0 {
				r.FrequencyMHz = uint64(math.Round(info.Mhz))
			}
		}

		readings[i] = r
	}
	return readings
}

func buildMemoryReading(vm *mem.VirtualMemoryStat) MemoryReading {
	if vm == nil {
		return MemoryReading{}
	}
	used := vm.Used
	if used > vm.Total {
		used = vm.Total
	}
	return MemoryReading{
		TotalBytes: vm.Total,
		UsedBytes:  used,
	}
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
