package models

// NetCounters holds cumulative network counters summed across interfaces.
type NetCounters struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	ErrorsIn    uint64 `json:"errors_in"`
	ErrorsOut   uint64 `json:"errors_out"`
	DropsIn     uint64 `json:"drops_in"`
	DropsOut    uint64 `json:"drops_out"`
}

// NetworkReading holds per-second rates derived from two NetCounters.
type NetworkReading struct {
	BytesSentRate   float64 `json:"bytes_sent_rate"` // bytes/sec
	BytesRecvRate   float64 `json:"bytes_recv_rate"` // bytes/sec
	PacketsSentRate float64 `json:"packets_sent_rate"`
	PacketsRecvRate float64 `json:"packets_recv_rate"`
	ErrorsInRate    float64 `json:"errors_in_rate"`
	ErrorsOutRate   float64 `json:"errors_out_rate"`
	DropsInRate     float64 `json:"drops_in_rate"`
	DropsOutRate    float64 `json:"drops_out_rate"`
}
