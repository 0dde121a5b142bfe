package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menumeters/internal/models"
)

func netReading(sent float64, at time.Time) models.Reading {
	return models.Reading{
		Category:  models.CategoryNetwork,
		Timestamp: at,
		Network:   &models.NetworkReading{BytesSentRate: sent},
	}
}

func sentRate(r models.Reading) float64 { return r.Network.BytesSentRate }

func TestWindowRollover(t *testing.T) {
	base := time.Unix(0, 0)
	w := NewWindow(3)

	_, ok := w.Latest()
	assert.False(t, ok)
	assert.Zero(t, w.Peak(sentRate))

	for i := 1; i <= 4; i++ {
		w.Push(netReading(float64(i), base.Add(time.Duration(i)*time.Second)))
	}

	require.Equal(t, 3, w.Len())
	got := w.Readings()
	assert.Equal(t, []float64{4, 3, 2}, []float64{sentRate(got[0]), sentRate(got[1]), sentRate(got[2])})

	latest, ok := w.Latest()
	require.True(t, ok)
	assert.Equal(t, 4.0, sentRate(latest))
}

func TestWindowPeak(t *testing.T) {
	w := NewWindow(4)
	for _, v := range []float64{10, 250, 30} {
		w.Push(netReading(v, time.Now()))
	}
	assert.Equal(t, 250.0, w.Peak(sentRate))

	for _, v := range []float64{1, 2, 3, 4} {
		w.Push(netReading(v, time.Now()))
	}
	assert.Equal(t, 4.0, w.Peak(sentRate), "old peak evicted")
}

func TestWindowMinimumSize(t *testing.T) {
	w := NewWindow(0)
	w.Push(netReading(1, time.Now()))
	w.Push(netReading(2, time.Now()))
	assert.Equal(t, 1, w.Len())
}
