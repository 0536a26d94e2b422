//go:build !debruijn

package erat

import "math/bits"

// lowestBitValue returns the integer offset of the lowest set bit within
// an 8-byte aligned block of the sieve, using the CPU's count trailing
// zeros instruction. TrailingZeros64 returns 64 for a zero word, which
// hits the zero sentinel at the end of bitValues; callers never pass a
// zero word.
func lowestBitValue(word uint64) uint64 {
	return bitValues[bits.TrailingZeros64(word)]
}
