package services

import (
	"context"
	"sync"
	"time"

	"menumeters/internal/models"
)

// Board holds the latest frame of every category for readers outside the
// sampling loop. Frames older than ttl are reported as stale.
type Board struct {
	mu     sync.RWMutex
	frames map[models.Category]models.Frame
	ttl    time.Duration
	now    func() time.Time
}

// NewBoard returns an empty board. A zero ttl disables staleness checks.
func NewBoard(ttl time.Duration) *Board {
	return &Board{
		frames: make(map[models.Category]models.Frame),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Present stores f as the latest frame of its category.
func (b *Board) Present(_ context.Context, f models.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames[f.Category] = f
	return nil
}

// Get returns the latest frame for c. ok is false when no fresh frame
// exists, which is how a skipped update shows up to readers.
func (b *Board) Get(c models.Category) (models.Frame, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	f, ok := b.frames[c]
	if !ok || !b.fresh(f) {
		return models.Frame{}, false
	}
	return f, true
}

// All returns the fresh frames in display order.
func (b *Board) All() []models.Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()

	frames := make([]models.Frame, 0, len(b.frames))
	for _, c := range models.Categories {
		if f, ok := b.frames[c]; ok && b.fresh(f) {
			frames = append(frames, f)
		}
	}
	return frames
}

func (b *Board) fresh(f models.Frame) bool {
	return b.ttl <= 0 || b.now().Sub(f.Timestamp) < b.ttl
}
