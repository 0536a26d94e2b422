package erat

// wheelInit aligns a new sieving factor to the wheel without any
// division in the hot loop. Keyed by the quotient of the factor's first
// multiple modulo the wheel: multipleFactor is how many times the factor
// must be added to reach the next quotient coprime to the wheel basis,
// wheelIndex is that quotient's position among the wheel's residues.
type wheelInit struct {
	multipleFactor uint32
	wheelIndex     uint32
}

// wheelElement is one precomputed crossing-off step. unsetBit is the AND
// mask clearing the composite's bit at the current position; the byte
// distance to the next multiple coprime to the wheel basis is
// multipleFactor*(p/30) + correct for a sieving factor p; next is the
// wheel index of that multiple.
type wheelElement struct {
	unsetBit       uint8
	multipleFactor uint32
	correct        uint32
	next           uint32
}

// wheel bundles the lookup tables of one wheel modulus (30 or 210). The
// transition table holds 8 rows of residueCount elements, one row per
// residue class of the sieving factor modulo 30; rowOffset[p%30] selects
// the row. All fields are immutable after newWheel and shared freely
// across sieve instances and goroutines.
type wheel struct {
	modulo       uint64
	residueCount uint32
	init         []wheelInit
	table        []wheelElement
	rowOffset    [30]uint32
}

var (
	wheel30  = newWheel(30)
	wheel210 = newWheel(210)
)

// factorClasses are the residue classes modulo 30 a sieving factor can
// belong to, in transition table row order. Class 1 sits last because
// its offset within a byte is 31, one wheel block above the others.
var factorClasses = [8]uint64{7, 11, 13, 17, 19, 23, 29, 1}

// offsetRep maps a residue class to its sieve offset: the class of 1 is
// represented by 31, all others by themselves.
func offsetRep(rem uint64) uint64 {
	if rem == 1 {
		return 31
	}
	return rem
}

// bitIndex returns the bit position of a residue class within a byte.
func bitIndex(rem uint64) uint32 {
	for i, off := range byteOffsets {
		if off%30 == rem%30 {
			return uint32(i)
		}
	}
	panic("erat: residue not coprime to 30")
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// newWheel computes the init and transition tables for the given wheel
// modulus. The tables are a pure function of the modulus and are built
// once at package initialization.
func newWheel(modulo uint64) *wheel {
	var residues []uint64
	for r := uint64(1); r < modulo; r++ {
		if gcd(r, modulo) == 1 {
			residues = append(residues, r)
		}
	}
	n := uint32(len(residues))

	w := &wheel{
		modulo:       modulo,
		residueCount: n,
		init:         make([]wheelInit, modulo),
		table:        make([]wheelElement, 8*n),
	}
	for row, c := range factorClasses {
		w.rowOffset[c%30] = uint32(row) * n
	}

	for r := uint64(0); r < modulo; r++ {
		t := uint64(0)
		for gcd(r+t, modulo) != 1 {
			t++
		}
		idx := uint32(0)
		for i, res := range residues {
			if res == r+t {
				idx = uint32(i)
			}
		}
		w.init[r] = wheelInit{multipleFactor: uint32(t), wheelIndex: idx}
	}

	for row, c := range factorClasses {
		for j, q := range residues {
			next := uint64(0)
			gap := uint64(0)
			if j+1 < len(residues) {
				next = uint64(row)*uint64(n) + uint64(j) + 1
				gap = residues[j+1] - q
			} else {
				next = uint64(row) * uint64(n)
				gap = residues[0] + modulo - q
			}
			rem := c * q % 30
			rem2 := c * (q + gap) % 30
			// c*gap - (offsetRep(rem2) - offsetRep(rem)) is a positive
			// multiple of 30 for every coprime pair, so the subtraction
			// below never wraps.
			correct := (c*gap + offsetRep(rem) - offsetRep(rem2)) / 30
			w.table[uint32(row)*n+uint32(j)] = wheelElement{
				unsetBit:       ^(uint8(1) << bitIndex(rem)),
				multipleFactor: uint32(gap),
				correct:        uint32(correct),
				next:           uint32(next),
			}
		}
	}
	return w
}

// sievingFactor is a prime crossing off its multiples, together with its
// resumption state: byteIndex is relative to the current segment and
// carries over the overshoot at each segment boundary.
type sievingFactor struct {
	primeDiv30 uint64
	byteIndex  uint64
	wheelIndex uint32
}

// alignFactor computes the wheel state of prime p for a segment starting
// at segmentLow (a multiple of 30). The first crossed multiple is the
// smallest multiple of p that is > segmentLow, >= p*p and coprime to the
// wheel basis. Reports false if no such multiple exists below stop, in
// which case p contributes nothing to the remaining range.
func alignFactor(p, segmentLow, stop uint64, w *wheel) (sievingFactor, bool) {
	// Shift by 6 so that dividing by 30 maps the offsets 7..31 onto the
	// byte that owns them (offset 31 belongs to the previous byte).
	segmentLow += 6
	quotient := segmentLow/p + 1
	if quotient < p {
		quotient = p
	}
	multiple := p * quotient
	if multiple > stop {
		return sievingFactor{}, false
	}
	ini := w.init[quotient%w.modulo]
	next := p * uint64(ini.multipleFactor)
	if next > stop-multiple {
		return sievingFactor{}, false
	}
	next += multiple - segmentLow
	return sievingFactor{
		primeDiv30: p / 30,
		byteIndex:  next / 30,
		wheelIndex: w.rowOffset[p%30] + ini.wheelIndex,
	}, true
}
