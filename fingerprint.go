package erat

import (
	"context"
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Fingerprint returns an XXH3 digest of all primes in [start, stop],
// hashed as consecutive little-endian 8-byte values in ascending order.
// Two ranges have the same fingerprint iff they contain the same primes,
// which makes it a cheap way to compare sieve runs across configurations
// or machines without materializing the primes.
func Fingerprint(start, stop uint64, opts ...Option) (uint64, error) {
	h := xxh3.New()
	var buf [8]byte
	_, err := runSieve(context.Background(), start, stop, func(p uint64) error {
		binary.LittleEndian.PutUint64(buf[:], p)
		_, _ = h.Write(buf[:])
		return nil
	}, opts)
	if err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
