package services

import (
	"context"
	"errors"
	"time"

	"menumeters/internal/models"
	"menumeters/internal/presenter"

	"go.uber.org/zap"
)

// Monitor is the timer loop: on each tick it samples the categories that
// are due, reconciles them with their previous sample and presents the
// result. All sampler state is touched only from the goroutine running Run.
type Monitor struct {
	samplers  []Sampler
	intervals map[models.Category]time.Duration
	windows   map[models.Category]*Window
	next      map[models.Category]time.Time
	presenter presenter.Presenter
	logger    *zap.Logger
	base      time.Duration
}

// NewMonitor wires samplers to a presenter. Samplers without a positive
// interval are never sampled.
func NewMonitor(samplers []Sampler, intervals map[models.Category]time.Duration, windowSize int, p presenter.Presenter, logger *zap.Logger) *Monitor {
	m := &Monitor{
		intervals: make(map[models.Category]time.Duration),
		windows:   make(map[models.Category]*Window),
		next:      make(map[models.Category]time.Time),
		presenter: p,
		logger:    logger,
	}
	for _, s := range samplers {
		interval := intervals[s.Category()]
		if interval <= 0 {
			logger.Info("meter disabled", zap.String("category", string(s.Category())))
			continue
		}
		m.samplers = append(m.samplers, s)
		m.intervals[s.Category()] = interval
		m.windows[s.Category()] = NewWindow(windowSize)
		m.base = gcd(m.base, interval)
	}
	return m
}

func gcd(a, b time.Duration) time.Duration {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// BaseInterval is the period of the single underlying ticker.
func (m *Monitor) BaseInterval() time.Duration {
	return m.base
}

// Run primes every sampler and ticks until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	if len(m.samplers) == 0 {
		return errors.New("no meters enabled")
	}

	m.Prime(ctx, time.Now())

	ticker := time.NewTicker(m.base)
	defer ticker.Stop()

	m.logger.Info("monitor started", zap.Duration("tick", m.base), zap.Int("meters", len(m.samplers)))
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return nil
		case now := <-ticker.C:
			m.Tick(ctx, now)
		}
	}
}

// Prime records a baseline for every sampler so the first tick can
// already show rates.
func (m *Monitor) Prime(ctx context.Context, now time.Time) {
	for _, s := range m.samplers {
		c := s.Category()
		if err := s.Prime(ctx, now); err != nil {
			m.logSkip(c, err)
		}
		m.next[c] = now.Add(m.intervals[c])
	}
}

// Tick samples and presents every category that is due at now. A failing
// category is skipped for this tick; the others are unaffected.
func (m *Monitor) Tick(ctx context.Context, now time.Time) {
	for _, s := range m.samplers {
		c := s.Category()
		if !m.due(c, now) {
			continue
		}

		reading, err := s.Sample(ctx, now)
		if err != nil {
			m.logSkip(c, err)
			continue
		}

		window := m.windows[c]
		window.Push(reading)
		if err := m.presenter.Present(ctx, presenter.Format(reading, window)); err != nil {
			m.logger.Warn("failed to present frame", zap.String("category", string(c)), zap.Error(err))
		}
	}
}

// due reports whether c should be sampled at now and schedules the next
// sample. Half a base tick of slack absorbs ticker jitter.
func (m *Monitor) due(c models.Category, now time.Time) bool {
	next, scheduled := m.next[c]
	if scheduled && now.Before(next.Add(-m.base/2)) {
		return false
	}

	interval := m.intervals[c]
	if !scheduled {
		m.next[c] = now.Add(interval)
		return true
	}
	next = next.Add(interval)
	if !next.After(now) {
		next = now.Add(interval)
	}
	m.next[c] = next
	return true
}

func (m *Monitor) logSkip(c models.Category, err error) {
	switch {
	case errors.Is(err, ErrNoBaseline), errors.Is(err, ErrClockSkew):
		m.logger.Debug("meter update skipped", zap.String("category", string(c)), zap.Error(err))
	default:
		m.logger.Warn("meter unavailable", zap.String("category", string(c)), zap.Error(err))
	}
}
