package services

import "menumeters/internal/models"

// Window keeps the most recent readings of one category in a fixed ring.
// It backs the "peak over the last N samples" text and is never persisted.
type Window struct {
	readings []models.Reading
	end      int
	len      int
}

// NewWindow returns a window holding at most size readings.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = 1
	}
	return &Window{readings: make([]models.Reading, size)}
}

// Push adds r, evicting the oldest reading when the window is full.
func (w *Window) Push(r models.Reading) {
	w.readings[w.end] = r
	w.end = (w.end + 1) % len(w.readings)
	w.len = min(len(w.readings), w.len+1)
}

// Len returns the number of readings held.
func (w *Window) Len() int {
	return w.len
}

// Readings returns the held readings, newest first.
func (w *Window) Readings() []models.Reading {
	out := make([]models.Reading, 0, w.len)
	size := len(w.readings)
	for i := 0; i < w.len; i++ {
		out = append(out, w.readings[((w.end-i-1)%size+size)%size])
	}
	return out
}

// Latest returns the newest reading.
func (w *Window) Latest() (models.Reading, bool) {
	if w.len == 0 {
		return models.Reading{}, false
	}
	size := len(w.readings)
	return w.readings[(w.end-1+size)%size], true
}

// Peak returns the largest value of fn over the window, or 0 when empty.
func (w *Window) Peak(fn func(models.Reading) float64) float64 {
	peak := 0.0
	for i, r := range w.Readings() {
		if v := fn(r); i == 0 || v > peak {
			peak = v
		}
	}
	return peak
}
