package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menumeters/internal/delta"
	"menumeters/internal/models"
)

var (
	// ErrNoBaseline is returned on the first sample of a cumulative
	// category: the baseline is stored and nothing can be displayed yet.
	ErrNoBaseline = errors.New("no previous sample")
	// ErrClockSkew is returned when a sample is not newer than the
	// previous one. The new sample becomes the baseline.
	ErrClockSkew = errors.New("sample timestamp not after previous sample")
)

// Sampler reads one category and reconciles it with the previous sample.
// A Sampler is not safe for concurrent use; it is owned by a single loop.
type Sampler interface {
	Category() models.Category
	// Prime records a baseline without producing a reading.
	Prime(ctx context.Context, now time.Time) error
	Sample(ctx context.Context, now time.Time) (models.Reading, error)
}

// NewSamplers returns one sampler per category, each with its own state.
func NewSamplers(p Provider) []Sampler {
	return []Sampler{
		NewCPUSampler(p),
		NewMemorySampler(p),
		NewNetworkSampler(p),
		NewDiskSampler(p),
	}
}

// previous is the PreviousSample state of a cumulative category.
type previous[T any] struct {
	value T
	at    time.Time
	set   bool
}

// advance stores cur as the new baseline and returns the old one with the
// elapsed time, or an error when no delta can be computed.
func (p *previous[T]) advance(cur T, now time.Time) (T, time.Duration, error) {
	old, oldAt, had := p.value, p.at, p.set
	p.value, p.at, p.set = cur, now, true

	if !had {
		return old, 0, ErrNoBaseline
	}
	elapsed := now.Sub(oldAt)
	if elapsed <= 0 {
		return old, 0, fmt.Errorf("%w: elapsed %v", ErrClockSkew, elapsed)
	}
	return old, elapsed, nil
}

// CPUSampler produces busy percentages from cumulative CPU times.
type CPUSampler struct {
	provider Provider
	prev     previous[models.CPUTimes]
	cores    int
}

func NewCPUSampler(p Provider) *CPUSampler {
	return &CPUSampler{provider: p}
}

func (s *CPUSampler) Category() models.Category { return models.CategoryCPU }

func (s *CPUSampler) Prime(ctx context.Context, now time.Time) error {
	_, err := s.Sample(ctx, now)
	if errors.Is(err, ErrNoBaseline) {
		return nil
	}
	return err
}

func (s *CPUSampler) Sample(ctx context.Context, now time.Time) (models.Reading, error) {
	cur, err := s.provider.CPUTimes(ctx)
	if err != nil {
		return models.Reading{}, err
	}
	if s.cores == 0 {
		// the core count only feeds menu normalisation; failure is not fatal
		if n, err := s.provider.CoreCount(ctx); err == nil {
			s.cores = n
		}
	}

	prev, elapsed, err := s.prev.advance(cur, now)
	if err != nil {
		return models.Reading{}, err
	}

	reading := delta.CPUBreakdown(prev, cur, elapsed, s.cores)
	return models.Reading{
		Category:  models.CategoryCPU,
		Timestamp: now,
		Elapsed:   elapsed,
		CPU:       &reading,
	}, nil
}

// MemorySampler reports instantaneous memory usage. It keeps no state.
type MemorySampler struct {
	provider Provider
}

func NewMemorySampler(p Provider) *MemorySampler {
	return &MemorySampler{provider: p}
}

func (s *MemorySampler) Category() models.Category { return models.CategoryMemory }

func (s *MemorySampler) Prime(context.Context, time.Time) error { return nil }

func (s *MemorySampler) Sample(ctx context.Context, now time.Time) (models.Reading, error) {
	sample, err := s.provider.Memory(ctx)
	if err != nil {
		return models.Reading{}, err
	}
	reading := delta.Memory(sample)
	return models.Reading{
		Category:  models.CategoryMemory,
		Timestamp: now,
		Memory:    &reading,
	}, nil
}

// NetworkSampler produces byte and packet rates across all interfaces.
type NetworkSampler struct {
	provider Provider
	prev     previous[models.NetCounters]
}

func NewNetworkSampler(p Provider) *NetworkSampler {
	return &NetworkSampler{provider: p}
}

func (s *NetworkSampler) Category() models.Category { return models.CategoryNetwork }

func (s *NetworkSampler) Prime(ctx context.Context, now time.Time) error {
	_, err := s.Sample(ctx, now)
	if errors.Is(err, ErrNoBaseline) {
		return nil
	}
	return err
}

func (s *NetworkSampler) Sample(ctx context.Context, now time.Time) (models.Reading, error) {
	cur, err := s.provider.Network(ctx)
	if err != nil {
		return models.Reading{}, err
	}
	prev, elapsed, err := s.prev.advance(cur, now)
	if err != nil {
		return models.Reading{}, err
	}
	reading := delta.NetworkRates(prev, cur, elapsed)
	return models.Reading{
		Category:  models.CategoryNetwork,
		Timestamp: now,
		Elapsed:   elapsed,
		Network:   &reading,
	}, nil
}

// DiskSampler produces I/O rates across all block devices.
type DiskSampler struct {
	provider Provider
	prev     previous[models.DiskCounters]
}

func NewDiskSampler(p Provider) *DiskSampler {
	return &DiskSampler{provider: p}
}

func (s *DiskSampler) Category() models.Category { return models.CategoryDisk }

func (s *DiskSampler) Prime(ctx context.Context, now time.Time) error {
	_, err := s.Sample(ctx, now)
	if errors.Is(err, ErrNoBaseline) {
		return nil
	}
	return err
}

func (s *DiskSampler) Sample(ctx context.Context, now time.Time) (models.Reading, error) {
	cur, err := s.provider.Disk(ctx)
	if err != nil {
		return models.Reading{}, err
	}
	prev, elapsed, err := s.prev.advance(cur, now)
	if err != nil {
		return models.Reading{}, err
	}
	reading := delta.DiskRates(prev, cur, elapsed)
	return models.Reading{
		Category:  models.CategoryDisk,
		Timestamp: now,
		Elapsed:   elapsed,
		Disk:      &reading,
	}, nil
}
