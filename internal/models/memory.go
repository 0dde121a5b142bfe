package models

// MemorySample is an instantaneous virtual memory reading in bytes.
// Used is Total minus Available; Reported is the host's own "used" figure.
type MemorySample struct {
	Total     uint64 `json:"total"`
	Available uint64 `json:"available"`
	Used      uint64 `json:"used"`
	Reported  uint64 `json:"reported_used"`
	Free      uint64 `json:"free"`
	Active    uint64 `json:"active"`
	Inactive  uint64 `json:"inactive"`
	Buffers   uint64 `json:"buffers"`
	Cached    uint64 `json:"cached"`
	Shared    uint64 `json:"shared"`
	Slab      uint64 `json:"slab"`
}

// MemoryReading is the delta engine output for the memory category.
type MemoryReading struct {
	UsedPercent float64      `json:"used_percent"`
	Sample      MemorySample `json:"sample"`
}
