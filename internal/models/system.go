package models

import "time"

// Reading is the result of reconciling a sample with the previous one.
// Elapsed is zero for instantaneous categories.
type Reading struct {
	Category  Category        `json:"category"`
	Timestamp time.Time       `json:"timestamp"`
	Elapsed   time.Duration   `json:"elapsed"`
	CPU       *CPUReading     `json:"cpu,omitempty"`
	Memory    *MemoryReading  `json:"memory,omitempty"`
	Network   *NetworkReading `json:"network,omitempty"`
	Disk      *DiskReading    `json:"disk,omitempty"`
}

// Frame is what a presenter shows for one category: a short primary text,
// an optional secondary unit line and the context menu lines.
type Frame struct {
	Category  Category  `json:"category"`
	Title     string    `json:"title"`
	Text      []string  `json:"text"`
	Units     []string  `json:"units,omitempty"`
	Menu      []string  `json:"menu"`
	Timestamp time.Time `json:"timestamp"`
	Reading   Reading   `json:"reading"`
}
