package models

// DiskCounters holds cumulative disk I/O counters summed across devices.
// Times are in milliseconds.
type DiskCounters struct {
	ReadCount  uint64 `json:"read_count"`
	WriteCount uint64 `json:"write_count"`
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
	ReadTime   uint64 `json:"read_time"`
	WriteTime  uint64 `json:"write_time"`
	BusyTime   uint64 `json:"busy_time"`
}

// DiskReading holds per-second rates derived from two DiskCounters.
// Time rates are milliseconds of disk time per wall second.
type DiskReading struct {
	ReadCountRate  float64 `json:"read_count_rate"`
	WriteCountRate float64 `json:"write_count_rate"`
	ReadBytesRate  float64 `json:"read_bytes_rate"`  // bytes/sec
	WriteBytesRate float64 `json:"write_bytes_rate"` // bytes/sec
	ReadTimeRate   float64 `json:"read_time_rate"`
	WriteTimeRate  float64 `json:"write_time_rate"`
	BusyTimeRate   float64 `json:"busy_time_rate"`
}
