package services

import (
	"context"

	"menumeters/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Exporter mirrors the latest readings into prometheus gauges.
type Exporter struct {
	registry    *prometheus.Registry
	cpuBusy     prometheus.Gauge
	memoryUsed  prometheus.Gauge
	memoryTotal prometheus.Gauge
	network     *prometheus.GaugeVec
	disk        *prometheus.GaugeVec
	updates     *prometheus.CounterVec
}

// NewExporter registers the gauges on a private registry.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		cpuBusy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "menumeters",
			Name:      "cpu_busy_percent",
			Help:      "Share of CPU time spent busy between the last two samples.",
		}),
		memoryUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "menumeters",
			Name:      "memory_used_percent",
			Help:      "Memory in use as a percentage of total.",
		}),
		memoryTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "menumeters",
			Name:      "memory_total_bytes",
			Help:      "Total physical memory.",
		}),
		network: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "menumeters",
			Name:      "network_bytes_per_second",
			Help:      "Network throughput across all interfaces.",
		}, []string{"direction"}),
		disk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "menumeters",
			Name:      "disk_bytes_per_second",
			Help:      "Disk throughput across all devices.",
		}, []string{"direction"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "menumeters",
			Name:      "updates_total",
			Help:      "Frames presented per category.",
		}, []string{"category"}),
	}
	e.registry.MustRegister(e.cpuBusy, e.memoryUsed, e.memoryTotal, e.network, e.disk, e.updates)
	return e
}

// Registry returns the registry to serve on /metrics.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

func (e *Exporter) Present(_ context.Context, f models.Frame) error {
	r := f.Reading
	switch {
	case r.CPU != nil:
		e.cpuBusy.Set(r.CPU.BusyPercent)
	case r.Memory != nil:
		e.memoryUsed.Set(r.Memory.UsedPercent)
		e.memoryTotal.Set(float64(r.Memory.Sample.Total))
	case r.Network != nil:
		e.network.WithLabelValues("sent").Set(r.Network.BytesSentRate)
		e.network.WithLabelValues("recv").Set(r.Network.BytesRecvRate)
	case r.Disk != nil:
		e.disk.WithLabelValues("read").Set(r.Disk.ReadBytesRate)
		e.disk.WithLabelValues("write").Set(r.Disk.WriteBytesRate)
	default:
		return nil
	}
	e.updates.WithLabelValues(string(f.Category)).Inc()
	return nil
}
