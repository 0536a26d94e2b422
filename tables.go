package erat

// The sieve is a byte array in which the 8 bits of each byte correspond
// to the offsets { 7, 11, 13, 17, 19, 23, 29, 31 } within one block of
// 30 consecutive integers. 64 bits of the sieve hence correspond to 8
// bytes spanning an interval of size 30 * 8 = 240. Numbers divisible by
// 2, 3 or 5 have no bit at all, which is what makes the modulo-30 wheel
// a 4x reduction over a plain odd-number sieve.
var byteOffsets = [8]uint64{7, 11, 13, 17, 19, 23, 29, 31}

// bitValues maps a bit-scan result to the integer offset that bit
// represents within an 8-byte aligned block of the sieve. The index is
// produced by a count-trailing-zeros instruction, which may return the
// operand width (64) for a zero input, so the table carries one extra
// zero entry to keep that case in bounds.
var bitValues = [65]uint64{
	7, 11, 13, 17, 19, 23, 29, 31,
	37, 41, 43, 47, 49, 53, 59, 61,
	67, 71, 73, 77, 79, 83, 89, 91,
	97, 101, 103, 107, 109, 113, 119, 121,
	127, 131, 133, 137, 139, 143, 149, 151,
	157, 161, 163, 167, 169, 173, 179, 181,
	187, 191, 193, 197, 199, 203, 209, 211,
	217, 221, 223, 227, 229, 233, 239, 241,
	0,
}

// deBruijn64 is the multiplier of the De Bruijn bit scan, an integer-only
// alternative to a hardware count-trailing-zeros:
// https://www.chessprogramming.org/BitScan#De_Bruijn_Multiplication
const deBruijn64 = 0x3F08A4C6ACB9DBD

// bruijnBitValues maps ((x ^ (x-1)) * deBruijn64) >> 58 to the same
// integer offsets as bitValues.
var bruijnBitValues = [64]uint64{
	7, 47, 11, 49, 67, 113, 13, 53,
	89, 71, 161, 101, 119, 187, 17, 233,
	59, 79, 91, 73, 133, 139, 163, 103,
	149, 121, 203, 169, 191, 217, 19, 239,
	43, 61, 109, 83, 157, 97, 181, 229,
	77, 131, 137, 143, 199, 167, 211, 41,
	107, 151, 179, 227, 127, 197, 209, 37,
	173, 223, 193, 31, 221, 29, 23, 241,
}

// unsetSmaller[r] clears the bits of the first sieve byte whose offsets
// lie below r. Indexed by the byte remainder of the range start, which
// uses equivalence classes 7..36 instead of the usual 0..29.
var unsetSmaller = [37]uint8{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xfe, 0xfe, 0xfe, 0xfe, 0xfc, 0xfc, 0xf8, 0xf8,
	0xf8, 0xf8, 0xf0, 0xf0, 0xe0, 0xe0, 0xe0, 0xe0,
	0xc0, 0xc0, 0xc0, 0xc0, 0xc0, 0xc0, 0x80, 0x80,
	0x00, 0x00, 0x00, 0x00, 0x00,
}

// unsetLarger[r] clears the bits of the last sieve byte whose offsets
// lie above r. Indexed like unsetSmaller.
var unsetLarger = [37]uint8{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
	0x01, 0x01, 0x01, 0x03, 0x03, 0x07, 0x07, 0x07,
	0x07, 0x0f, 0x0f, 0x1f, 0x1f, 0x1f, 0x1f, 0x3f,
	0x3f, 0x3f, 0x3f, 0x3f, 0x3f, 0x7f, 0x7f, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff,
}

// smallPrimes are the primes the wheel and the pre-sieve handle
// implicitly. They are emitted from this list rather than discovered by
// sieving: 2, 3 and 5 have no bit in the modulo-30 layout, and primes up
// to the configured pre-sieve limit are crossed off by the pre-sieve
// pattern together with their multiples.
var smallPrimes = [8]uint64{2, 3, 5, 7, 11, 13, 17, 19}

// byteRemainder returns n % 30 using equivalence classes 7..36 instead
// of the usual 0..29, so that a range bound always lands inside the byte
// that carries its bit. n must be >= 7.
func byteRemainder(n uint64) uint64 {
	return (n-7)%30 + 7
}
