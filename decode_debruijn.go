//go:build debruijn

package erat

// lowestBitValue returns the integer offset of the lowest set bit within
// an 8-byte aligned block of the sieve, using a De Bruijn multiplication
// instead of a hardware bit scan. Build with -tags debruijn on targets
// where TrailingZeros64 compiles to a library call.
func lowestBitValue(word uint64) uint64 {
	return bruijnBitValues[(word^(word-1))*deBruijn64>>58]
}
