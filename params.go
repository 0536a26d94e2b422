package erat

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

const (
	// MaxStop is the largest supported upper bound. The margin below
	// 2^64 absorbs the wheel's overshoot when aligning a factor: a
	// multiple can exceed stop by at most 10 * prime < 10 * 2^32.
	MaxStop = math.MaxUint64 - 10*(1<<32)

	// MinSegmentBytes and MaxSegmentBytes bound the segment bit array.
	// Segment sizes must be powers of two so that address arithmetic
	// needs no modulo; one byte spans 30 integers.
	MinSegmentBytes = 16
	MaxSegmentBytes = 8 << 20

	// DefaultPreSieveLimit is the largest prime whose multiples are
	// removed by the bulk pre-sieve pattern rather than by per-factor
	// crossing. See WithPreSieveLimit.
	DefaultPreSieveLimit = 19

	// The base-prime generator sieves a far smaller range, so it runs
	// with an L1-sized segment and a shorter pre-sieve pattern.
	generatorSegmentBytes  = 8 << 10
	generatorPreSieveLimit = 13

	// Default segment sizing: roughly sqrt(stop)/30 bytes keeps most
	// factors crossing at least once per segment, clamped to a range
	// that fits the L1/L2 caches of current CPUs.
	defaultMinSegmentBytes = 16 << 10
	defaultMaxSegmentBytes = 4 << 20
)

var (
	// ErrStopTooLarge is returned when stop exceeds MaxStop.
	ErrStopTooLarge = errors.New("erat: stop exceeds MaxStop")

	// ErrSegmentBytes is returned when the configured segment size is
	// not a power of two within [MinSegmentBytes, MaxSegmentBytes].
	ErrSegmentBytes = errors.New("erat: invalid segment size")

	// ErrPreSieveLimit is returned when the configured pre-sieve limit
	// is not one of 5, 7, 11, 13, 17, 19.
	ErrPreSieveLimit = errors.New("erat: invalid pre-sieve limit")

	// ErrSumOverflow is returned when the sum of the primes in the
	// requested interval does not fit in a uint64.
	ErrSumOverflow = errors.New("erat: prime sum overflows uint64")
)

type config struct {
	segmentBytes  uint64
	preSieveLimit uint64
}

// Option configures a sieve run.
type Option func(*config)

// WithSegmentBytes sets the size of the segment bit array. n must be a
// power of two in [MinSegmentBytes, MaxSegmentBytes]; each byte covers
// 30 integers, so a 32 KiB segment sieves ~983k integers at a time. The
// default is derived from stop and clamped to a cache-friendly range.
func WithSegmentBytes(n int) Option {
	return func(c *config) { c.segmentBytes = uint64(n) }
}

// WithPreSieveLimit sets the largest prime removed via the precomputed
// repeating byte pattern. Valid values are 5, 7, 11, 13, 17 and 19; 5
// disables the pattern, leaving all crossing to the wheels. The output
// is identical for every valid value, only the speed differs.
func WithPreSieveLimit(limit uint64) Option {
	return func(c *config) { c.preSieveLimit = limit }
}

func newConfig(stop uint64, opts []Option) (config, error) {
	cfg := config{preSieveLimit: DefaultPreSieveLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.segmentBytes == 0 {
		cfg.segmentBytes = defaultSegmentBytes(stop)
	}
	if cfg.segmentBytes < MinSegmentBytes || cfg.segmentBytes > MaxSegmentBytes ||
		cfg.segmentBytes&(cfg.segmentBytes-1) != 0 {
		return cfg, fmt.Errorf("%w: %d bytes", ErrSegmentBytes, cfg.segmentBytes)
	}
	switch cfg.preSieveLimit {
	case 5, 7, 11, 13, 17, 19:
	default:
		return cfg, fmt.Errorf("%w: %d", ErrPreSieveLimit, cfg.preSieveLimit)
	}
	return cfg, nil
}

func defaultSegmentBytes(stop uint64) uint64 {
	n := isqrt(stop) / 30
	n = min(max(n, defaultMinSegmentBytes), defaultMaxSegmentBytes)
	return floorPow2(n)
}

// isqrt returns the integer square root of n.
func isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	for r > math.MaxUint32 || (r > 0 && r*r > n) {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// checkedAdd returns a+b, saturating at the maximum uint64 instead of
// wrapping.
func checkedAdd(a, b uint64) uint64 {
	if b > math.MaxUint64-a {
		return math.MaxUint64
	}
	return a + b
}

// floorPow2 returns the largest power of two <= n. n must be non-zero.
func floorPow2(n uint64) uint64 {
	return uint64(1) << (63 - bits.LeadingZeros64(n))
}
