package erat

import (
	"context"
	"testing"
)

// refPrimes returns the primes in [start, stop] from a plain bool-array
// sieve, the trusted baseline the wheel implementation is checked
// against. stop must be small.
func refPrimes(start, stop uint64) []uint64 {
	if stop < start || stop < 2 {
		return nil
	}
	composite := make([]bool, stop+1)
	for i := uint64(2); i*i <= stop; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= stop; j += i {
			composite[j] = true
		}
	}
	var primes []uint64
	for i := max(start, 2); i <= stop; i++ {
		if !composite[i] {
			primes = append(primes, i)
		}
	}
	return primes
}

func equalU64(t *testing.T, got, want []uint64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d\n got: %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPrimesMatchesReference(t *testing.T) {
	ranges := [][2]uint64{
		{0, 100},
		{2, 1000},
		{0, 10_000},
		{1, 7},
		{90, 150},
		{121, 121},
		{48, 49},
		{0, 48},
		{0, 49},
		{999_900, 1_000_000},
		{500_000, 500_500},
	}
	for _, r := range ranges {
		got, err := Primes(r[0], r[1])
		if err != nil {
			t.Fatalf("[%d, %d]: %v", r[0], r[1], err)
		}
		equalU64(t, got, refPrimes(r[0], r[1]))
	}
}

func TestPrimesSegmentSizes(t *testing.T) {
	want := refPrimes(0, 100_000)
	for _, bytes := range []int{16, 64, 256, 1024, 16_384} {
		got, err := Primes(0, 100_000, WithSegmentBytes(bytes))
		if err != nil {
			t.Fatalf("segment %d: %v", bytes, err)
		}
		equalU64(t, got, want)
	}
}

// Sub-range results must concatenate to the full-range result for any
// split point.
func TestPrimesPartitionConsistency(t *testing.T) {
	want := refPrimes(0, 20_000)
	for _, cut := range []uint64{1, 2, 7, 30, 31, 121, 9999, 19_999} {
		head, err := Primes(0, cut)
		if err != nil {
			t.Fatal(err)
		}
		tail, err := Primes(cut+1, 20_000)
		if err != nil {
			t.Fatal(err)
		}
		equalU64(t, append(head, tail...), want)
	}
}

func TestPrimesEmptyAndTinyRanges(t *testing.T) {
	tests := []struct {
		start, stop uint64
		want        []uint64
	}{
		{100, 50, nil},
		{0, 0, nil},
		{0, 1, nil},
		{0, 2, []uint64{2}},
		{2, 2, []uint64{2}},
		{3, 5, []uint64{3, 5}},
		{2, 6, []uint64{2, 3, 5}},
		{7, 7, []uint64{7}},
		{8, 10, nil},
		{24, 28, nil},
	}
	for _, tt := range tests {
		got, err := Primes(tt.start, tt.stop)
		if err != nil {
			t.Fatalf("[%d, %d]: %v", tt.start, tt.stop, err)
		}
		equalU64(t, got, tt.want)
	}
}

// A tiny segment size drives the small-factor cutoff down to 7, so every
// factor above 7 crosses off through the modulo-210 wheel.
func TestPrimesLargeWheelPath(t *testing.T) {
	got, err := Primes(0, 50_000, WithSegmentBytes(16))
	if err != nil {
		t.Fatal(err)
	}
	equalU64(t, got, refPrimes(0, 50_000))
}

type collectSink struct {
	values []uint64
}

func (c *collectSink) finishedSegment(sieve []byte, low uint64) error {
	return scanSegment(sieve, low, func(p uint64) error {
		c.values = append(c.values, p)
		return nil
	})
}

// Crossing a single factor must clear exactly the wheel-coprime
// multiples of that factor within the range, starting at its square.
func TestEngineSingleFactor(t *testing.T) {
	sink := &collectSink{}
	e := newEngine(7, 2000, 16, 5, sink)
	e.addFactor(31)
	if err := e.run(context.Background()); err != nil {
		t.Fatal(err)
	}

	set := map[uint64]bool{}
	for _, v := range sink.values {
		set[v] = true
	}
	if set[961] {
		t.Error("31*31 = 961 still set")
	}
	if set[1333] {
		t.Error("31*43 = 1333 still set")
	}
	if !set[31] {
		t.Error("31 itself was cleared")
	}
	// 7*31 = 217 is below 31's square and 7 was not a factor here, so
	// 217 must survive as a composite.
	if !set[217] {
		t.Error("217 cleared, but crossing must start at the factor's square")
	}
}

func TestEngineContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &collectSink{}
	e := newEngine(7, 10_000_000, 1024, 19, sink)
	if err := e.run(ctx); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(sink.values) != 0 {
		t.Errorf("sink received %d values after cancellation", len(sink.values))
	}
}
