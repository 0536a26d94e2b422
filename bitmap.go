package erat

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Bitmap returns the primes in [start, stop] as a compressed roaring
// bitmap. Primes are dense enough near the start of the number line and
// sparse enough far out that roaring's adaptive containers beat a plain
// []uint64 for set-membership workloads.
func Bitmap(start, stop uint64, opts ...Option) (*roaring64.Bitmap, error) {
	bm := roaring64.New()
	_, err := runSieve(context.Background(), start, stop, func(p uint64) error {
		bm.Add(p)
		return nil
	}, opts)
	if err != nil {
		return nil, err
	}
	return bm, nil
}
