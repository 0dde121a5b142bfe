package presenter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"menumeters/internal/models"
)

// yotta is the largest prefix shown; bigger values stay in YB.
const yotta = 1e24

// FormatBytes splits v into a four character value and a unit such as
// "KB", stepping by 1000.
func FormatBytes(v float64) (string, string) {
	prefix := ""
	switch {
	case v >= 1000*yotta:
		v, prefix = v/yotta, "Y"
	case v >= 1000:
		v, prefix = humanize.ComputeSI(v)
		prefix = strings.ToUpper(prefix)
	}
	return fmt.Sprintf("%4.3g", v), prefix + "B"
}

// menuBytes renders v so that plain byte values line up with prefixed ones.
func menuBytes(v float64) string {
	value, unit := FormatBytes(v)
	if len(unit) == 1 {
		value = " " + value
	}
	return value + unit
}

// Window is the view of recent readings the formatter needs.
type Window interface {
	Peak(fn func(models.Reading) float64) float64
}

type single models.Reading

func (s single) Peak(fn func(models.Reading) float64) float64 {
	return fn(models.Reading(s))
}

// Format builds the frame shown for r. Rate categories display the peak
// over w; a nil w uses r alone.
func Format(r models.Reading, w Window) models.Frame {
	if w == nil {
		w = single(r)
	}

	f := models.Frame{
		Category:  r.Category,
		Title:     r.Category.Title(),
		Timestamp: r.Timestamp,
		Reading:   r,
	}

	switch {
	case r.CPU != nil:
		f.Text = []string{fmt.Sprintf("%5.1f%%", r.CPU.BusyPercent)}
		f.Menu = cpuMenu(r.CPU)
	case r.Memory != nil:
		f.Text = []string{fmt.Sprintf("%5.1f%%", r.Memory.UsedPercent)}
		f.Menu = memoryMenu(r.Memory)
	case r.Network != nil:
		f.Text, f.Units = rateText(w,
			func(r models.Reading) float64 { return r.Network.BytesSentRate },
			func(r models.Reading) float64 { return r.Network.BytesRecvRate },
		)
		f.Menu = networkMenu(r.Network)
	case r.Disk != nil:
		f.Text, f.Units = rateText(w,
			func(r models.Reading) float64 { return r.Disk.ReadBytesRate },
			func(r models.Reading) float64 { return r.Disk.WriteBytesRate },
		)
		f.Menu = diskMenu(r.Disk)
	}
	return f
}

func rateText(w Window, top, bottom func(models.Reading) float64) ([]string, []string) {
	topValue, topUnit := FormatBytes(w.Peak(top))
	bottomValue, bottomUnit := FormatBytes(w.Peak(bottom))
	return []string{topValue, bottomValue}, []string{topUnit + "/s", bottomUnit + "/s"}
}

type field struct {
	name  string
	value float64
}

func cpuMenu(r *models.CPUReading) []string {
	cores := float64(max(r.CoreCount, 1))
	fields := []field{
		{"User", r.Rates.User},
		{"Nice", r.Rates.Nice},
		{"System", r.Rates.System},
		{"Idle", r.Rates.Idle},
		{"Iowait", r.Rates.IOWait},
		{"Irq", r.Rates.IRQ},
		{"Softirq", r.Rates.SoftIRQ},
		{"Steal", r.Rates.Steal},
		{"Guest", r.Rates.Guest},
		{"Guest Nice", r.Rates.GuestNice},
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("%5.1f%% %s", f.value/cores*100, f.name))
	}
	return lines
}

func memoryMenu(r *models.MemoryReading) []string {
	s := r.Sample
	fields := []field{
		{"Total", float64(s.Total)},
		{"Available", float64(s.Available)},
		{"Unavailable", float64(s.Used)},
		{"Used", float64(s.Reported)},
		{"Free", float64(s.Free)},
		{"Active", float64(s.Active)},
		{"Inactive", float64(s.Inactive)},
		{"Buffers", float64(s.Buffers)},
		{"Cached", float64(s.Cached)},
		{"Shared", float64(s.Shared)},
		{"Slab", float64(s.Slab)},
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, menuBytes(f.value)+" "+f.name)
	}
	return lines
}

func networkMenu(r *models.NetworkReading) []string {
	return []string{
		menuBytes(r.BytesSentRate) + "/s Bytes Sent",
		menuBytes(r.BytesRecvRate) + "/s Bytes Recv",
		fmt.Sprintf("%6.1f/s Packets Sent", r.PacketsSentRate),
		fmt.Sprintf("%6.1f/s Packets Recv", r.PacketsRecvRate),
		fmt.Sprintf("%6.1f/s Errin", r.ErrorsInRate),
		fmt.Sprintf("%6.1f/s Errout", r.ErrorsOutRate),
		fmt.Sprintf("%6.1f/s Dropin", r.DropsInRate),
		fmt.Sprintf("%6.1f/s Dropout", r.DropsOutRate),
	}
}

// disk times are milliseconds per second, so /10 gives a percentage
func diskMenu(r *models.DiskReading) []string {
	return []string{
		fmt.Sprintf("%6.1f/s Read Count", r.ReadCountRate),
		fmt.Sprintf("%6.1f/s Write Count", r.WriteCountRate),
		menuBytes(r.ReadBytesRate) + "/s Read Bytes",
		menuBytes(r.WriteBytesRate) + "/s Write Bytes",
		fmt.Sprintf("%7.1f%% Read Time", r.ReadTimeRate/10),
		fmt.Sprintf("%7.1f%% Write Time", r.WriteTimeRate/10),
		fmt.Sprintf("%7.1f%% Busy Time", r.BusyTimeRate/10),
	}
}
