// Package erat generates prime numbers with a segmented, wheel-factorized
// sieve of Eratosthenes.
//
// The package enumerates, counts, sums and fingerprints all primes in an
// arbitrary interval [start, stop] of uint64 values up to [MaxStop]. It
// sieves only the requested interval, so finding the primes near 10^18
// costs time proportional to the interval width plus the primes below
// sqrt(stop), not to 10^18.
//
// # Architecture
//
// Erat uses three classic optimizations, layered:
//
// Modulo-30 wheel compression: numbers divisible by 2, 3 or 5 are never
// represented. Each byte of the sieve covers 30 consecutive integers,
// its 8 bits standing for the offsets {7, 11, 13, 17, 19, 23, 29, 31}.
// Compared to a one-bit-per-odd-number sieve this shrinks memory and
// work by another factor of ~1.9, and it lets the decoder map set bits
// straight to integers through a 64-entry lookup table.
//
// Segmentation: the interval is sieved in fixed-size segments that fit
// in the CPU cache. Every sieving prime carries its crossing state (byte
// index and wheel index) across segment boundaries, so each segment is
// sieved with sequential, cache-resident memory traffic regardless of
// how large the full interval is.
//
// Precomputed crossing wheels: for each sieving prime, the distance from
// one multiple to the next multiple coprime to the wheel basis is read
// from a precomputed transition table instead of being computed. Primes
// small enough to hit a segment many times use a modulo-30 wheel; larger
// primes use a modulo-210 wheel that also skips multiples divisible
// by 7. A pre-sieve pattern additionally removes the multiples of the
// primes up to 19 in bulk with a rotated memcpy before any crossing
// happens.
//
// Sieving primes themselves come from a second, smaller instance of the
// same segmented engine covering [7, sqrt(stop)], which bootstraps off a
// plain odd-number sieve below sqrt(sqrt(stop)).
//
// # Usage
//
// The top-level functions cover the common cases:
//
//	primes, err := erat.Primes(0, 100)          // materialized slice
//	n, err := erat.Count(0, 1_000_000)          // popcount, no decoding
//	s, err := erat.Sum(2, 1_000_000)            // overflow-checked
//	err := erat.Visit(ctx, a, b, func(p uint64) error { ... })
//
// [Visit] streams primes in ascending order without materializing them
// and observes context cancellation between segments. [Count] never
// decodes bit positions, it only counts them, which makes it the
// fastest way to answer "how many".
//
// [Fingerprint] hashes the prime stream with xxh3 and [Bitmap] collects
// it into a compressed roaring bitmap for set-membership workloads.
//
// # Choosing Parameters
//
// The defaults are sensible for any interval; two knobs exist for
// tuning:
//
// [WithSegmentBytes] sets the segment size. The default is derived from
// stop and clamped to a cache-friendly range. Smaller segments help when
// the interval is short, larger ones when stop is huge and the sieving
// primes are many.
//
// [WithPreSieveLimit] sets the largest prime handled by the bulk
// pre-sieve pattern (valid: 5, 7, 11, 13, 17, 19; 5 disables it). The
// output is identical for every valid value, only the speed differs;
// the pattern for limit 19 occupies 19·17·13·11·7 = 323323 bytes.
//
// # Concurrency
//
// A single sieve run is strictly sequential. [CountParallel],
// [SumParallel] and [PrimesParallel] split the interval into contiguous
// sub-ranges and sieve each with an independent engine on its own
// goroutine; results merge deterministically, so the answer is identical
// to the sequential one for every worker count. The wheel tables are
// immutable after package initialization and shared by all engines.
//
// # References
//
//   - primesieve, the algorithm this package follows:
//     https://github.com/kimwalisch/primesieve
//   - Segmented sieve of Eratosthenes:
//     https://en.wikipedia.org/wiki/Sieve_of_Eratosthenes#Segmented_sieve
//   - De Bruijn bit scan (optional decoder, -tags debruijn):
//     https://www.chessprogramming.org/BitScan#De_Bruijn_Multiplication
package erat
