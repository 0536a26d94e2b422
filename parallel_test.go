package erat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		start, stop uint64
		workers     int
		spans       int
	}{
		{0, 1000, 4, 4},
		{0, 1000, 1, 1},
		{0, 1000, 0, -1}, // GOMAXPROCS, count unknown but >= 1
		{10, 10, 8, 1},
		{10, 12, 8, 3},
		{11, 10, 8, 0},
	}
	for _, tt := range tests {
		spans := partition(tt.start, tt.stop, tt.workers)
		if tt.spans >= 0 {
			require.Len(t, spans, tt.spans, "partition(%d, %d, %d)", tt.start, tt.stop, tt.workers)
		} else {
			require.NotEmpty(t, spans)
		}
		if len(spans) == 0 {
			continue
		}

		// Contiguous, disjoint, covering [start, stop].
		require.Equal(t, tt.start, spans[0].start)
		require.Equal(t, tt.stop, spans[len(spans)-1].stop)
		for i := 1; i < len(spans); i++ {
			require.Equal(t, spans[i-1].stop+1, spans[i].start)
		}
		for _, sp := range spans {
			require.LessOrEqual(t, sp.start, sp.stop)
		}
	}
}

func TestCountParallelMatchesSequential(t *testing.T) {
	want, err := Count(0, 1_000_000)
	require.NoError(t, err)
	require.EqualValues(t, 78_498, want)

	for workers := 1; workers <= 8; workers++ {
		got, err := CountParallel(context.Background(), 0, 1_000_000, workers)
		require.NoError(t, err)
		require.Equal(t, want, got, "workers = %d", workers)
	}
}

func TestSumParallelMatchesSequential(t *testing.T) {
	want, err := Sum(0, 100_000)
	require.NoError(t, err)

	for _, workers := range []int{1, 3, 7} {
		got, err := SumParallel(context.Background(), 0, 100_000, workers)
		require.NoError(t, err)
		require.Equal(t, want, got, "workers = %d", workers)
	}
}

func TestPrimesParallelOrdered(t *testing.T) {
	want, err := Primes(0, 100_000)
	require.NoError(t, err)

	got, err := PrimesParallel(context.Background(), 0, 100_000, 3)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestParallelOffsetRange(t *testing.T) {
	want, err := Count(500_000, 1_000_000)
	require.NoError(t, err)

	got, err := CountParallel(context.Background(), 500_000, 1_000_000, 5)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestParallelEmptyRange(t *testing.T) {
	n, err := CountParallel(context.Background(), 100, 50, 4)
	require.NoError(t, err)
	require.Zero(t, n)

	primes, err := PrimesParallel(context.Background(), 100, 50, 4)
	require.NoError(t, err)
	require.Empty(t, primes)
}

func TestParallelCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CountParallel(ctx, 0, 1_000_000_000, 4)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestParallelPropagatesOptions(t *testing.T) {
	_, err := CountParallel(context.Background(), 0, 1000, 2, WithSegmentBytes(100))
	require.True(t, errors.Is(err, ErrSegmentBytes))
}
