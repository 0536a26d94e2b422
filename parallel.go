package erat

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// span is one contiguous sub-range of a partitioned sieve.
type span struct {
	start, stop uint64
}

// partition splits [start, stop] into at most workers contiguous spans
// of roughly equal width. workers <= 0 means GOMAXPROCS. Tiny ranges get
// fewer spans; an empty range gets none.
func partition(start, stop uint64, workers int) []span {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if stop < start {
		return nil
	}
	n := uint64(workers)
	if width := stop - start; width < n {
		n = width + 1
	}
	spans := make([]span, 0, n)
	width := (stop - start) / n
	lo := start
	for i := uint64(0); i < n; i++ {
		hi := stop
		if i < n-1 {
			hi = lo + width
		}
		spans = append(spans, span{start: lo, stop: hi})
		lo = hi + 1
	}
	return spans
}

// CountParallel counts the primes in [start, stop] using up to workers
// goroutines, each sieving its own sub-range with an independent engine.
// workers <= 0 means GOMAXPROCS. The result is identical to Count for
// every partitioning.
func CountParallel(ctx context.Context, start, stop uint64, workers int, opts ...Option) (uint64, error) {
	spans := partition(start, stop, workers)
	counts := make([]uint64, len(spans))

	g, ctx := errgroup.WithContext(ctx)
	for i, sp := range spans {
		i, sp := i, sp
		g.Go(func() error {
			n, err := runSieve(ctx, sp.start, sp.stop, nil, opts)
			counts[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var total uint64
	for _, n := range counts {
		total += n
	}
	return total, nil
}

// SumParallel sums the primes in [start, stop] using up to workers
// goroutines. Returns ErrSumOverflow if the total does not fit in a
// uint64, whether the overflow happens within a sub-range or when
// merging.
func SumParallel(ctx context.Context, start, stop uint64, workers int, opts ...Option) (uint64, error) {
	spans := partition(start, stop, workers)
	sums := make([]uint64, len(spans))

	g, ctx := errgroup.WithContext(ctx)
	for i, sp := range spans {
		i, sp := i, sp
		g.Go(func() error {
			var acc sumAccumulator
			if _, err := runSieve(ctx, sp.start, sp.stop, acc.add, opts); err != nil {
				return err
			}
			sums[i] = acc.total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var acc sumAccumulator
	for _, s := range sums {
		if err := acc.add(s); err != nil {
			return 0, err
		}
	}
	return acc.total, nil
}

// PrimesParallel returns all primes in [start, stop] in ascending order,
// sieving sub-ranges concurrently. Each goroutine materializes its own
// slice; the spans are contiguous and disjoint, so concatenating them in
// span order restores the global order.
func PrimesParallel(ctx context.Context, start, stop uint64, workers int, opts ...Option) ([]uint64, error) {
	spans := partition(start, stop, workers)
	parts := make([][]uint64, len(spans))

	g, ctx := errgroup.WithContext(ctx)
	for i, sp := range spans {
		i, sp := i, sp
		g.Go(func() error {
			_, err := runSieve(ctx, sp.start, sp.stop, func(p uint64) error {
				parts[i] = append(parts[i], p)
				return nil
			}, opts)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var total int
	for _, part := range parts {
		total += len(part)
	}
	primes := make([]uint64, 0, total)
	for _, part := range parts {
		primes = append(primes, part...)
	}
	return primes, nil
}
