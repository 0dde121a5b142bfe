package models

// CPUTimes holds cumulative CPU time in seconds, summed over all cores.
// Fields the platform does not report stay zero.
type CPUTimes struct {
	User      float64 `json:"user"`
	Nice      float64 `json:"nice"`
	System    float64 `json:"system"`
	Idle      float64 `json:"idle"`
	IOWait    float64 `json:"iowait"`
	IRQ       float64 `json:"irq"`
	SoftIRQ   float64 `json:"softirq"`
	Steal     float64 `json:"steal"`
	Guest     float64 `json:"guest"`
	GuestNice float64 `json:"guest_nice"`
}

// Busy returns the time spent doing work. Guest time is already counted in
// User and Nice on Linux, so it is left out.
func (t CPUTimes) Busy() float64 {
	return t.User + t.Nice + t.System + t.IRQ + t.SoftIRQ + t.Steal
}

// IdleTotal returns the time spent waiting, including I/O wait.
func (t CPUTimes) IdleTotal() float64 {
	return t.Idle + t.IOWait
}

// CPUReading is the delta engine output for the CPU category.
type CPUReading struct {
	BusyPercent float64 `json:"busy_percent"`
	// Rates is the CPU seconds spent per wall second for each field.
	Rates     CPUTimes `json:"rates"`
	CoreCount int      `json:"core_count"`
}
