package erat

import "context"

// factorFeed forwards every prime decoded from a finished generator
// segment to the outer engine's factor registry. Segments are scanned
// low to high and the generator's segments arrive in order, so factors
// reach the outer engine strictly ascending, which its lazy admission
// depends on.
type factorFeed struct {
	target *engine
}

func (f *factorFeed) finishedSegment(sieve []byte, low uint64) error {
	return scanSegment(sieve, low, func(p uint64) error {
		f.target.addFactor(p)
		return nil
	})
}

// generateFactors runs the base-prime generator: a second, smaller
// instance of the segmented engine covering [preSieveLimit+1,
// isqrt(stop)], whose surviving bits are the sieving factors the outer
// engine needs. Primes up to the pre-sieve limit never become factors;
// the pattern removes their multiples wholesale.
func generateFactors(ctx context.Context, target *engine, cfg config) error {
	root := isqrt(target.stop)
	if root <= cfg.preSieveLimit {
		return nil
	}
	gen := newEngine(
		cfg.preSieveLimit+1,
		root,
		min(cfg.segmentBytes, generatorSegmentBytes),
		// The generator's own pattern must not touch primes it has to
		// emit, so its limit stays below its range.
		min(generatorPreSieveLimit, cfg.preSieveLimit),
		&factorFeed{target: target},
	)
	for _, p := range bootstrapFactors(isqrt(root)) {
		gen.addFactor(p)
	}
	return gen.run(ctx)
}

// bootstrapFactors returns the primes in [7, n] using a plain odd-number
// sieve. These are the factors the generator itself sieves with; n is at
// most isqrt(isqrt(MaxStop)) = 65535, so the recursion bottoms out here.
func bootstrapFactors(n uint64) []uint64 {
	if n < 7 {
		return nil
	}
	composite := make([]bool, n+1)
	var primes []uint64
	for i := uint64(3); i <= n; i += 2 {
		if composite[i] {
			continue
		}
		if i >= 7 {
			primes = append(primes, i)
		}
		for j := i * i; j <= n; j += 2 * i {
			composite[j] = true
		}
	}
	return primes
}
