// Package delta turns pairs of cumulative counter snapshots into
// percentages and per-second rates. Every function here is pure.
package delta

import (
	"time"

	"menumeters/internal/models"
)

// CPUPercent returns the share of time the CPU was busy between prev and
// cur, in [0, 100]. Counters that went backwards count as zero.
func CPUPercent(prev, cur models.CPUTimes) float64 {
	busy := floatDelta(prev.Busy(), cur.Busy())
	idle := floatDelta(prev.IdleTotal(), cur.IdleTotal())
	return Percent(busy, busy+idle)
}

// MemoryPercent returns used/total as a percentage in [0, 100].
func MemoryPercent(used, total uint64) float64 {
	return Percent(float64(used), float64(total))
}

// Percent returns part/whole*100 clamped to [0, 100], or 0 if whole is
// not positive.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return clamp(part/whole*100, 0, 100)
}

// CounterDelta returns cur-prev. A counter that reset or wrapped yields 0.
func CounterDelta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

// Rate returns the per-second change of a cumulative counter. It is 0 when
// elapsed is not positive or the counter wrapped.
func Rate(prev, cur uint64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(CounterDelta(prev, cur)) / secs
}

func floatRate(prev, cur float64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return floatDelta(prev, cur) / secs
}

func floatDelta(prev, cur float64) float64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CPUBreakdown computes the busy percentage and the CPU seconds spent per
// wall second in each field.
func CPUBreakdown(prev, cur models.CPUTimes, elapsed time.Duration, cores int) models.CPUReading {
	return models.CPUReading{
		BusyPercent: CPUPercent(prev, cur),
		Rates: models.CPUTimes{
			User:      floatRate(prev.User, cur.User, elapsed),
			Nice:      floatRate(prev.Nice, cur.Nice, elapsed),
			System:    floatRate(prev.System, cur.System, elapsed),
			Idle:      floatRate(prev.Idle, cur.Idle, elapsed),
			IOWait:    floatRate(prev.IOWait, cur.IOWait, elapsed),
			IRQ:       floatRate(prev.IRQ, cur.IRQ, elapsed),
			SoftIRQ:   floatRate(prev.SoftIRQ, cur.SoftIRQ, elapsed),
			Steal:     floatRate(prev.Steal, cur.Steal, elapsed),
			Guest:     floatRate(prev.Guest, cur.Guest, elapsed),
			GuestNice: floatRate(prev.GuestNice, cur.GuestNice, elapsed),
		},
		CoreCount: cores,
	}
}

// Memory builds the memory reading. No previous sample is involved.
func Memory(sample models.MemorySample) models.MemoryReading {
	return models.MemoryReading{
		UsedPercent: MemoryPercent(sample.Used, sample.Total),
		Sample:      sample,
	}
}

// NetworkRates converts two network snapshots into per-second rates.
func NetworkRates(prev, cur models.NetCounters, elapsed time.Duration) models.NetworkReading {
	return models.NetworkReading{
		BytesSentRate:   Rate(prev.BytesSent, cur.BytesSent, elapsed),
		BytesRecvRate:   Rate(prev.BytesRecv, cur.BytesRecv, elapsed),
		PacketsSentRate: Rate(prev.PacketsSent, cur.PacketsSent, elapsed),
		PacketsRecvRate: Rate(prev.PacketsRecv, cur.PacketsRecv, elapsed),
		ErrorsInRate:    Rate(prev.ErrorsIn, cur.ErrorsIn, elapsed),
		ErrorsOutRate:   Rate(prev.ErrorsOut, cur.ErrorsOut, elapsed),
		DropsInRate:     Rate(prev.DropsIn, cur.DropsIn, elapsed),
		DropsOutRate:    Rate(prev.DropsOut, cur.DropsOut, elapsed),
	}
}

// DiskRates converts two disk snapshots into per-second rates.
func DiskRates(prev, cur models.DiskCounters, elapsed time.Duration) models.DiskReading {
	return models.DiskReading{
		ReadCountRate:  Rate(prev.ReadCount, cur.ReadCount, elapsed),
		WriteCountRate: Rate(prev.WriteCount, cur.WriteCount, elapsed),
		ReadBytesRate:  Rate(prev.ReadBytes, cur.ReadBytes, elapsed),
		WriteBytesRate: Rate(prev.WriteBytes, cur.WriteBytes, elapsed),
		ReadTimeRate:   Rate(prev.ReadTime, cur.ReadTime, elapsed),
		WriteTimeRate:  Rate(prev.WriteTime, cur.WriteTime, elapsed),
		BusyTimeRate:   Rate(prev.BusyTime, cur.BusyTime, elapsed),
	}
}
