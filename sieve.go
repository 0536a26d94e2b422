package erat

import "context"

// segmentSink consumes finished segments. The bit array handed to it is
// owned by the engine and only valid for the duration of the call.
type segmentSink interface {
	finishedSegment(sieve []byte, low uint64) error
}

// engine is one instance of the segmented sieve of Eratosthenes. It owns
// its bit array and its sieving factors exclusively; the wheel tables it
// reads are immutable and shared.
//
// Sieving factors arrive through addFactor in ascending order and wait
// in pending until their square is within reach of the segment being
// sieved. Admitted factors are split into two buckets: factors up to
// maxSmallFactor cross off with the modulo-30 wheel, larger ones with
// the sparser modulo-210 wheel, which skips multiples divisible by 7.
type engine struct {
	start, stop  uint64
	segmentLow   uint64
	segmentHigh  uint64
	segmentBytes uint64

	maxSmallFactor uint64
	sieve          []byte
	pre            *preSieve
	sink           segmentSink

	small   []sievingFactor
	large   []sievingFactor
	pending []uint64
}

func newEngine(start, stop, segmentBytes, preSieveLimit uint64, sink segmentSink) *engine {
	start = max(start, 7)
	e := &engine{
		start:          start,
		stop:           stop,
		segmentBytes:   segmentBytes,
		maxSmallFactor: max(7, segmentBytes*3/10),
		pre:            newPreSieve(preSieveLimit),
		sink:           sink,
	}
	if stop < start {
		return e
	}
	e.segmentLow = start - byteRemainder(start)
	e.segmentHigh = min(checkedAdd(e.segmentLow, segmentBytes*30+6), stop)
	return e
}

// addFactor registers a sieving prime. Factors must arrive in ascending
// order; they become active once their square is within the segment
// being sieved, never earlier.
func (e *engine) addFactor(p uint64) {
	e.pending = append(e.pending, p)
}

// run sieves all segments of [start, stop] and hands each finished one
// to the sink. Cancellation is checked once per segment.
func (e *engine) run(ctx context.Context) error {
	if e.stop < e.start {
		return nil
	}
	e.sieve = make([]byte, e.segmentBytes)
	for e.segmentLow < e.stop {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.segmentHigh >= e.stop {
			return e.sieveLastSegment()
		}
		if err := e.sieveSegment(); err != nil {
			return err
		}
		dist := e.segmentBytes * 30
		e.segmentLow += dist
		e.segmentHigh = min(checkedAdd(e.segmentHigh, dist), e.stop)
	}
	return nil
}

func (e *engine) sieveSegment() error {
	sv := e.sieve
	e.reset(sv)
	e.admitFactors()
	crossOff(sv, wheel30, e.small)
	crossOff(sv, wheel210, e.large)
	return e.sink.finishedSegment(sv, e.segmentLow)
}

// sieveLastSegment shrinks the bit array to the bytes that still carry
// candidates, trims bits above stop and zero-pads to an 8-byte boundary
// so the decoder can keep reading whole words.
func (e *engine) sieveLastSegment() error {
	rem := byteRemainder(e.stop)
	n := (e.stop-rem-e.segmentLow)/30 + 1
	sv := e.sieve[:n]
	e.reset(sv)
	e.admitFactors()
	crossOff(sv, wheel30, e.small)
	crossOff(sv, wheel210, e.large)
	sv[n-1] &= unsetLarger[rem]

	padded := e.sieve[:(n+7)&^uint64(7)]
	for i := n; i < uint64(len(padded)); i++ {
		padded[i] = 0
	}
	return e.sink.finishedSegment(padded, e.segmentLow)
}

// reset stamps the pre-sieve pattern (or all ones) and, in the first
// segment, clears the bits below start.
func (e *engine) reset(sv []byte) {
	e.pre.apply(sv, e.segmentLow)
	if e.segmentLow <= e.start {
		sv[0] &= unsetSmaller[byteRemainder(e.start)]
	}
}

// admitFactors moves pending factors whose square is within the current
// segment into the active buckets. Factors stay ordered, so the first
// too-large square ends the scan.
func (e *engine) admitFactors() {
	i := 0
	for ; i < len(e.pending); i++ {
		p := e.pending[i]
		if p*p > e.segmentHigh {
			break
		}
		if p <= e.maxSmallFactor {
			if f, ok := alignFactor(p, e.segmentLow, e.stop, wheel30); ok {
				e.small = append(e.small, f)
			}
		} else if f, ok := alignFactor(p, e.segmentLow, e.stop, wheel210); ok {
			e.large = append(e.large, f)
		}
	}
	if i > 0 {
		e.pending = e.pending[i:]
	}
}

// crossOff clears the bits of all multiples of the given factors inside
// the segment. Each step is one table lookup, one AND and two adds; the
// byte overshoot past the segment end is kept as the factor's state for
// the next segment.
func crossOff(sieve []byte, w *wheel, factors []sievingFactor) {
	n := uint64(len(sieve))
	table := w.table
	for i := range factors {
		f := &factors[i]
		byteIndex, wheelIndex := f.byteIndex, f.wheelIndex
		for byteIndex < n {
			el := &table[wheelIndex]
			sieve[byteIndex] &= el.unsetBit
			byteIndex += uint64(el.multipleFactor)*f.primeDiv30 + uint64(el.correct)
			wheelIndex = el.next
		}
		f.byteIndex = byteIndex - n
		f.wheelIndex = wheelIndex
	}
}
