package erat

// preSieve removes the multiples of the smallest primes above the wheel
// basis (7, 11, 13, 17, 19 up to the configured limit) in bulk. Their
// crossing pattern repeats every product-of-primes bytes, so it is
// computed once and stamped onto each segment by a rotated copy instead
// of being re-sieved factor by factor.
type preSieve struct {
	limit   uint64
	pattern []byte
}

// newPreSieve builds the repeating pattern for all primes p with
// 5 < p <= limit. A limit of 5 disables the pattern; segments are then
// reset to all ones instead.
func newPreSieve(limit uint64) *preSieve {
	ps := &preSieve{limit: limit}

	period := uint64(1)
	var primes []uint64
	for _, p := range smallPrimes {
		if p > 5 && p <= limit {
			primes = append(primes, p)
			period *= p
		}
	}
	if period == 1 {
		return ps
	}

	pattern := make([]byte, period)
	for i := range pattern {
		pattern[i] = 0xff
	}
	for _, p := range primes {
		// Cross off every multiple of p coprime to 30, starting from
		// p*1 = p itself. The pattern is anchored at 0, and p divides
		// the period, so a rotated copy stays aligned for any segment.
		ini := wheel30.init[1]
		byteIndex := (p + p*uint64(ini.multipleFactor) - 6) / 30
		wheelIndex := wheel30.rowOffset[p%30] + ini.wheelIndex
		k := p / 30
		for byteIndex < period {
			e := &wheel30.table[wheelIndex]
			pattern[byteIndex] &= e.unsetBit
			byteIndex += uint64(e.multipleFactor)*k + uint64(e.correct)
			wheelIndex = e.next
		}
	}
	ps.pattern = pattern
	return ps
}

// apply resets a segment: either a rotated copy of the pattern or, with
// the pre-sieve disabled, all candidate bits set.
func (ps *preSieve) apply(sieve []byte, segmentLow uint64) {
	if ps.pattern == nil {
		for i := range sieve {
			sieve[i] = 0xff
		}
		return
	}
	offset := (segmentLow / 30) % uint64(len(ps.pattern))
	for i := 0; i < len(sieve); {
		n := copy(sieve[i:], ps.pattern[offset:])
		i += n
		offset = 0
	}
}
