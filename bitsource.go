package sbv

import "math/rand"

// BitSource supplies the N bits consumed by Construct, one at a time, in
// order. Implementations are opaque to the index: a reproducible seeded
// generator, a slice already held in memory, or any caller-defined stream.
type BitSource interface {
	// Next returns the next bit in the sequence. It is called exactly N
	// times by Construct and must not be called after that.
	Next() bool
}

// sliceBitSource replays a fixed slice of bits in order.
type sliceBitSource struct {
	bits []bool
	pos  int
}

// NewSliceBitSource returns a BitSource that replays bits in order. It is
// the simplest reproducible source: two indices built from the same slice
// are always identical.
func NewSliceBitSource(bits []bool) BitSource {
	return &sliceBitSource{bits: bits}
}

func (s *sliceBitSource) Next() bool {
	b := s.bits[s.pos]
	s.pos++
	return b
}

// randomBitSource draws uniform random bits from a seeded generator. The
// seed is always explicit and caller-supplied; this implementation never
// reads the clock on its own, so a run is only non-reproducible if the
// caller chooses to seed it from one.
type randomBitSource struct {
	rnd *rand.Rand
}

// NewRandomBitSource returns a BitSource drawing uniform random bits from a
// math/rand generator seeded with the given seed. Two sources built with
// the same seed produce the same bit sequence.
func NewRandomBitSource(seed int64) BitSource {
	return &randomBitSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *randomBitSource) Next() bool {
	return s.rnd.Intn(2) == 1
}
