package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"menumeters/internal/models"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// ErrUnavailable marks a metric the host could not report this tick.
var ErrUnavailable = errors.New("metric unavailable")

// Provider reads raw counters from the operating system.
type Provider interface {
	CPUTimes(ctx context.Context) (models.CPUTimes, error)
	CoreCount(ctx context.Context) (int, error)
	Memory(ctx context.Context) (models.MemorySample, error)
	Network(ctx context.Context) (models.NetCounters, error)
	Disk(ctx context.Context) (models.DiskCounters, error)
}

// GopsutilProvider is the Provider backed by gopsutil.
type GopsutilProvider struct {
	isWholeDisk func(name string) bool
}

// NewGopsutilProvider returns a Provider reading the local host.
func NewGopsutilProvider() *GopsutilProvider {
	return &GopsutilProvider{isWholeDisk: sysBlockDisk}
}

func unavailable(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, what, err)
}

// CPUTimes returns cumulative CPU times summed over all cores
func (p *GopsutilProvider) CPUTimes(ctx context.Context) (models.CPUTimes, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return models.CPUTimes{}, unavailable("cpu times", err)
	}
	if len(times) == 0 {
		return models.CPUTimes{}, unavailable("cpu times", errors.New("no cpu reported"))
	}

	t := times[0]
	return models.CPUTimes{
		User:      t.User,
		Nice:      t.Nice,
		System:    t.System,
		Idle:      t.Idle,
		IOWait:    t.Iowait,
		IRQ:       t.Irq,
		SoftIRQ:   t.Softirq,
		Steal:     t.Steal,
		Guest:     t.Guest,
		GuestNice: t.GuestNice,
	}, nil
}

// CoreCount returns the number of logical cores
func (p *GopsutilProvider) CoreCount(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, unavailable("cpu count", err)
	}
	if n <= 0 {
		return 0, unavailable("cpu count", fmt.Errorf("invalid core count %d", n))
	}
	return n, nil
}

// Memory returns the current virtual memory usage
func (p *GopsutilProvider) Memory(ctx context.Context) (models.MemorySample, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return models.MemorySample{}, unavailable("virtual memory", err)
	}
	return memorySample(vm)
}

func memorySample(vm *mem.VirtualMemoryStat) (models.MemorySample, error) {
	if vm == nil || vm.Total == 0 {
		return models.MemorySample{}, unavailable("virtual memory", errors.New("total memory is zero"))
	}

	available := min(vm.Available, vm.Total)
	return models.MemorySample{
		Total:     vm.Total,
		Available: available,
		Used:      vm.Total - available,
		Reported:  vm.Used,
		Free:      vm.Free,
		Active:    vm.Active,
		Inactive:  vm.Inactive,
		Buffers:   vm.Buffers,
		Cached:    vm.Cached,
		Shared:    vm.Shared,
		Slab:      vm.Slab,
	}, nil
}

// Network returns counters summed across all interfaces
func (p *GopsutilProvider) Network(ctx context.Context) (models.NetCounters, error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return models.NetCounters{}, unavailable("network counters", err)
	}
	if len(counters) == 0 {
		return models.NetCounters{}, unavailable("network counters", errors.New("no interfaces reported"))
	}
	return sumNetCounters(counters), nil
}

func sumNetCounters(counters []net.IOCountersStat) models.NetCounters {
	return models.NetCounters{
		BytesSent:   lo.SumBy(counters, func(c net.IOCountersStat) uint64 { return c.BytesSent }),
		BytesRecv:   lo.SumBy(counters, func(c net.IOCountersStat) uint64 { return c.BytesRecv }),
		PacketsSent: lo.SumBy(counters, func(c net.IOCountersStat) uint64 { return c.PacketsSent }),
		PacketsRecv: lo.SumBy(counters, func(c net.IOCountersStat) uint64 { return c.PacketsRecv }),
		ErrorsIn:    lo.SumBy(counters, func(c net.IOCountersStat) uint64 { return c.Errin }),
		ErrorsOut:   lo.SumBy(counters, func(c net.IOCountersStat) uint64 { return c.Errout }),
		DropsIn:     lo.SumBy(counters, func(c net.IOCountersStat) uint64 { return c.Dropin }),
		DropsOut:    lo.SumBy(counters, func(c net.IOCountersStat) uint64 { return c.Dropout }),
	}
}

// Disk returns I/O counters summed across whole disks. Partitions are
// skipped so their bytes are not counted twice.
func (p *GopsutilProvider) Disk(ctx context.Context) (models.DiskCounters, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return models.DiskCounters{}, unavailable("disk counters", err)
	}
	disks := wholeDisks(counters, p.isWholeDisk)
	if len(disks) == 0 {
		return models.DiskCounters{}, unavailable("disk counters", errors.New("no devices reported"))
	}
	return sumDiskCounters(disks), nil
}

func wholeDisks(counters map[string]disk.IOCountersStat, isWholeDisk func(string) bool) []disk.IOCountersStat {
	if isWholeDisk == nil {
		return lo.Values(counters)
	}
	return lo.Values(lo.PickBy(counters, func(name string, _ disk.IOCountersStat) bool {
		return isWholeDisk(name)
	}))
}

// sysBlockDisk reports whether name is listed under /sys/block, which holds
// whole disks but not their partitions. Hosts without sysfs only report
// whole disks, so every name passes there.
func sysBlockDisk(name string) bool {
	root := os.Getenv("HOST_SYS")
	if root == "" {
		root = "/sys"
	}
	block := filepath.Join(root, "block")
	if _, err := os.Stat(block); err != nil {
		return true
	}
	_, err := os.Stat(filepath.Join(block, strings.ReplaceAll(name, "/", "!")))
	return err == nil
}

func sumDiskCounters(counters []disk.IOCountersStat) models.DiskCounters {
	return models.DiskCounters{
		ReadCount:  lo.SumBy(counters, func(c disk.IOCountersStat) uint64 { return c.ReadCount }),
		WriteCount: lo.SumBy(counters, func(c disk.IOCountersStat) uint64 { return c.WriteCount }),
		ReadBytes:  lo.SumBy(counters, func(c disk.IOCountersStat) uint64 { return c.ReadBytes }),
		WriteBytes: lo.SumBy(counters, func(c disk.IOCountersStat) uint64 { return c.WriteBytes }),
		ReadTime:   lo.SumBy(counters, func(c disk.IOCountersStat) uint64 { return c.ReadTime }),
		WriteTime:  lo.SumBy(counters, func(c disk.IOCountersStat) uint64 { return c.WriteTime }),
		BusyTime:   lo.SumBy(counters, func(c disk.IOCountersStat) uint64 { return c.IoTime }),
	}
}
