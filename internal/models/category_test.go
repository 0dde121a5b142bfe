package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("gpu")
	assert.Error(t, err)
}

func TestCPUTimesAggregates(t *testing.T) {
	times := CPUTimes{User: 1, Nice: 2, System: 3, Idle: 4, IOWait: 5, IRQ: 6, SoftIRQ: 7, Steal: 8, Guest: 9}
	assert.Equal(t, 27.0, times.Busy())
	assert.Equal(t, 9.0, times.IdleTotal())
}
