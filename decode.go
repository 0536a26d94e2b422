package erat

import (
	"encoding/binary"
	"math/bits"
)

// scanSegment decodes every set bit of a finished segment, in ascending
// order, and hands the corresponding integer to emit. The segment length
// must be a multiple of 8 bytes; each 64-bit word spans 240 integers.
// A non-nil error from emit aborts the scan.
func scanSegment(sieve []byte, low uint64, emit func(uint64) error) error {
	for i := 0; i < len(sieve); i += 8 {
		word := binary.LittleEndian.Uint64(sieve[i:])
		base := low + uint64(i)*30
		for word != 0 {
			if err := emit(base + lowestBitValue(word)); err != nil {
				return err
			}
			word &= word - 1
		}
	}
	return nil
}

// countSegment counts the set bits of a finished segment without
// decoding them.
func countSegment(sieve []byte) uint64 {
	var count uint64
	for i := 0; i < len(sieve); i += 8 {
		count += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(sieve[i:])))
	}
	return count
}
