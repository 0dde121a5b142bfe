package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menumeters/internal/models"
)

// fakeProvider serves whatever counters the test sets.
type fakeProvider struct {
	cpu     models.CPUTimes
	cores   int
	memory  models.MemorySample
	network models.NetCounters
	disk    models.DiskCounters
	err     map[models.Category]error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{cores: 2, err: map[models.Category]error{}}
}

func (f *fakeProvider) fail(c models.Category) error {
	if err := f.err[c]; err != nil {
		return unavailable(string(c), err)
	}
	return nil
}

func (f *fakeProvider) CPUTimes(context.Context) (models.CPUTimes, error) {
	return f.cpu, f.fail(models.CategoryCPU)
}

func (f *fakeProvider) CoreCount(context.Context) (int, error) {
	return f.cores, nil
}

func (f *fakeProvider) Memory(context.Context) (models.MemorySample, error) {
	return f.memory, f.fail(models.CategoryMemory)
}

func (f *fakeProvider) Network(context.Context) (models.NetCounters, error) {
	return f.network, f.fail(models.CategoryNetwork)
}

func (f *fakeProvider) Disk(context.Context) (models.DiskCounters, error) {
	return f.disk, f.fail(models.CategoryDisk)
}

func TestNetworkSamplerFirstTickHasNoBaseline(t *testing.T) {
	p := newFakeProvider()
	s := NewNetworkSampler(p)
	ctx := context.Background()
	start := time.Unix(0, 0)

	_, err := s.Sample(ctx, start)
	require.ErrorIs(t, err, ErrNoBaseline)

	p.network.BytesRecv = 1_048_576
	r, err := s.Sample(ctx, start.Add(time.Second))
	require.NoError(t, err)
	require.NotNil(t, r.Network)
	assert.Equal(t, 1_048_576.0, r.Network.BytesRecvRate)
	assert.Equal(t, time.Second, r.Elapsed)
	assert.Equal(t, models.CategoryNetwork, r.Category)
}

func TestNetworkSamplerWraparound(t *testing.T) {
	p := newFakeProvider()
	s := NewNetworkSampler(p)
	ctx := context.Background()
	start := time.Unix(0, 0)

	p.network.BytesSent = 500
	require.NoError(t, s.Prime(ctx, start))

	p.network.BytesSent = 100
	r, err := s.Sample(ctx, start.Add(time.Second))
	require.NoError(t, err)
	assert.Zero(t, r.Network.BytesSentRate)

	p.network.BytesSent = 300
	r, err = s.Sample(ctx, start.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 200.0, r.Network.BytesSentRate, "baseline follows the reset counter")
}

func TestSamplerClockSkew(t *testing.T) {
	p := newFakeProvider()
	s := NewDiskSampler(p)
	ctx := context.Background()
	start := time.Unix(100, 0)

	require.NoError(t, s.Prime(ctx, start))

	_, err := s.Sample(ctx, start)
	require.ErrorIs(t, err, ErrClockSkew)

	p.disk.ReadBytes = 4096
	r, err := s.Sample(ctx, start.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2048.0, r.Disk.ReadBytesRate)
}

func TestSamplerUnavailableKeepsState(t *testing.T) {
	p := newFakeProvider()
	s := NewCPUSampler(p)
	ctx := context.Background()
	start := time.Unix(0, 0)

	p.cpu = models.CPUTimes{User: 100, Idle: 100}
	require.NoError(t, s.Prime(ctx, start))

	p.err[models.CategoryCPU] = errors.New("permission denied")
	_, err := s.Sample(ctx, start.Add(time.Second))
	require.ErrorIs(t, err, ErrUnavailable)

	delete(p.err, models.CategoryCPU)
	p.cpu = models.CPUTimes{User: 150, Idle: 150}
	r, err := s.Sample(ctx, start.Add(2*time.Second))
	require.NoError(t, err)
	assert.InDelta(t, 50.0, r.CPU.BusyPercent, 1e-9)
	assert.Equal(t, 2*time.Second, r.Elapsed)
	assert.Equal(t, 2, r.CPU.CoreCount)
}

func TestMemorySamplerNeedsNoBaseline(t *testing.T) {
	p := newFakeProvider()
	p.memory = models.MemorySample{Total: 8_000_000_000, Available: 4_000_000_000, Used: 4_000_000_000}
	s := NewMemorySampler(p)

	r, err := s.Sample(context.Background(), time.Unix(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 50.0, r.Memory.UsedPercent)
	assert.Zero(t, r.Elapsed)
}

func TestSamplersHaveIndependentState(t *testing.T) {
	p := newFakeProvider()
	a, b := NewNetworkSampler(p), NewNetworkSampler(p)
	ctx := context.Background()
	start := time.Unix(0, 0)

	require.NoError(t, a.Prime(ctx, start))

	p.network.BytesSent = 1000
	_, err := b.Sample(ctx, start.Add(time.Second))
	require.ErrorIs(t, err, ErrNoBaseline, "b never saw a's baseline")

	r, err := a.Sample(ctx, start.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1000.0, r.Network.BytesSentRate)
}

func TestNewSamplersCoversEveryCategory(t *testing.T) {
	var got []models.Category
	for _, s := range NewSamplers(newFakeProvider()) {
		got = append(got, s.Category())
	}
	assert.Equal(t, models.Categories, got)
}
