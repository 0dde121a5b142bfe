package presenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menumeters/internal/models"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in    float64
		value string
		unit  string
	}{
		{0, "   0", "B"},
		{999, " 999", "B"},
		{1500, " 1.5", "KB"},
		{12_000, "  12", "KB"},
		{1_048_576, "1.05", "MB"},
		{999e24, " 999", "YB"},
		{1e27, "1e+03", "YB"},
		{2.5e28, "2.5e+04", "YB"},
	}

	for _, tt := range tests {
		value, unit := FormatBytes(tt.in)
		assert.Equal(t, tt.value, value, "value for %v", tt.in)
		assert.Equal(t, tt.unit, unit, "unit for %v", tt.in)
	}
}

func TestMenuBytesAlignsPlainBytes(t *testing.T) {
	assert.Equal(t, "   12B", menuBytes(12))
	assert.Equal(t, " 1.5KB", menuBytes(1500))
}

type peaks []models.Reading

func (p peaks) Peak(fn func(models.Reading) float64) float64 {
	best := 0.0
	for _, r := range p {
		best = max(best, fn(r))
	}
	return best
}

func TestFormatCPU(t *testing.T) {
	r := models.Reading{
		Category: models.CategoryCPU,
		CPU: &models.CPUReading{
			BusyPercent: 50,
			Rates:       models.CPUTimes{User: 2, Idle: 2},
			CoreCount:   4,
		},
	}

	f := Format(r, nil)

	assert.Equal(t, "CPU", f.Title)
	assert.Equal(t, []string{" 50.0%"}, f.Text)
	require.Len(t, f.Menu, 10)
	assert.Equal(t, " 50.0% User", f.Menu[0])
	assert.Equal(t, " 50.0% Idle", f.Menu[3])
}

func TestFormatMemory(t *testing.T) {
	r := models.Reading{
		Category: models.CategoryMemory,
		Memory: &models.MemoryReading{
			UsedPercent: 50,
			Sample:      models.MemorySample{Total: 8_000_000_000, Available: 4_000_000_000, Used: 4_000_000_000, Reported: 3_000_000_000},
		},
	}

	f := Format(r, nil)

	assert.Equal(t, []string{" 50.0%"}, f.Text)
	require.Len(t, f.Menu, 11)
	assert.Equal(t, "   8GB Total", f.Menu[0])
	assert.Equal(t, "   4GB Unavailable", f.Menu[2])
	assert.Equal(t, "   3GB Used", f.Menu[3])
}

func TestFormatNetworkUsesWindowPeak(t *testing.T) {
	at := time.Unix(100, 0)
	latest := models.Reading{
		Category:  models.CategoryNetwork,
		Timestamp: at,
		Network:   &models.NetworkReading{BytesSentRate: 10, BytesRecvRate: 1_048_576},
	}
	older := models.Reading{
		Category: models.CategoryNetwork,
		Network:  &models.NetworkReading{BytesSentRate: 1500, BytesRecvRate: 0},
	}

	f := Format(latest, peaks{latest, older})

	assert.Equal(t, []string{" 1.5", "1.05"}, f.Text)
	assert.Equal(t, []string{"KB/s", "MB/s"}, f.Units)
	assert.Equal(t, "   10B/s Bytes Sent", f.Menu[0], "menu shows the latest reading")
	assert.Equal(t, at, f.Timestamp)
}

func TestFormatDisk(t *testing.T) {
	r := models.Reading{
		Category: models.CategoryDisk,
		Disk:     &models.DiskReading{ReadBytesRate: 2000, WriteBytesRate: 0, BusyTimeRate: 250, ReadCountRate: 3},
	}

	f := Format(r, nil)

	assert.Equal(t, "Disk", f.Title)
	assert.Equal(t, []string{"   2", "   0"}, f.Text)
	assert.Equal(t, []string{"KB/s", "B/s"}, f.Units)
	assert.Contains(t, f.Menu, "   3.0/s Read Count")
	assert.Contains(t, f.Menu, "   25.0% Busy Time")
}
