package erat

import (
	"context"
	"math/bits"
)

// finderSink turns finished segments of the outer engine into results.
// With a callback it decodes every surviving bit in ascending order;
// without one it only counts bits, which skips decoding entirely.
type finderSink struct {
	emit  func(uint64) error
	count uint64
}

func (s *finderSink) finishedSegment(sieve []byte, low uint64) error {
	if s.emit == nil {
		s.count += countSegment(sieve)
		return nil
	}
	return scanSegment(sieve, low, s.emit)
}

// runSieve drives one full sieve of [start, stop]: emits the wheel's own
// primes from the fixed list, generates the sieving factors, then runs
// the outer engine. A nil emit selects counting mode; the returned count
// is only meaningful then.
func runSieve(ctx context.Context, start, stop uint64, emit func(uint64) error, opts []Option) (uint64, error) {
	if stop > MaxStop {
		return 0, ErrStopTooLarge
	}
	if stop < start {
		return 0, nil
	}
	cfg, err := newConfig(stop, opts)
	if err != nil {
		return 0, err
	}

	sink := &finderSink{emit: emit}

	// 2, 3 and 5 have no bit in the wheel layout, and primes up to the
	// pre-sieve limit are crossed off by the pattern together with
	// their multiples. All of them are primes nonetheless.
	for _, p := range smallPrimes {
		if p > cfg.preSieveLimit || p < start || p > stop {
			continue
		}
		if emit == nil {
			sink.count++
		} else if err := emit(p); err != nil {
			return 0, err
		}
	}

	sieveStart := max(start, cfg.preSieveLimit+1)
	if sieveStart > stop {
		return sink.count, nil
	}

	finder := newEngine(sieveStart, stop, cfg.segmentBytes, cfg.preSieveLimit, sink)
	if err := generateFactors(ctx, finder, cfg); err != nil {
		return 0, err
	}
	if err := finder.run(ctx); err != nil {
		return 0, err
	}
	return sink.count, nil
}

// Primes returns all primes in [start, stop] in ascending order.
func Primes(start, stop uint64, opts ...Option) ([]uint64, error) {
	var primes []uint64
	_, err := runSieve(context.Background(), start, stop, func(p uint64) error {
		primes = append(primes, p)
		return nil
	}, opts)
	if err != nil {
		return nil, err
	}
	return primes, nil
}

// Visit calls visit once for every prime in [start, stop], in ascending
// order. A non-nil error from visit aborts the sieve and is returned
// unchanged. Cancellation via ctx is observed between segments.
func Visit(ctx context.Context, start, stop uint64, visit func(uint64) error, opts ...Option) error {
	_, err := runSieve(ctx, start, stop, visit, opts)
	return err
}

// Count returns the number of primes in [start, stop]. It never decodes
// bit positions, only counts them.
func Count(start, stop uint64, opts ...Option) (uint64, error) {
	return runSieve(context.Background(), start, stop, nil, opts)
}

// Sum returns the sum of all primes in [start, stop], or ErrSumOverflow
// if the total does not fit in a uint64.
func Sum(start, stop uint64, opts ...Option) (uint64, error) {
	var acc sumAccumulator
	_, err := runSieve(context.Background(), start, stop, acc.add, opts)
	if err != nil {
		return 0, err
	}
	return acc.total, nil
}

// sumAccumulator adds primes with an explicit carry check; silent
// wraparound would be indistinguishable from a valid result.
type sumAccumulator struct {
	total uint64
}

func (a *sumAccumulator) add(p uint64) error {
	total, carry := bits.Add64(a.total, p, 0)
	if carry != 0 {
		return ErrSumOverflow
	}
	a.total = total
	return nil
}
