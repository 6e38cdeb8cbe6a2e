package sbv

import "iter"

const wordBits = 64

// packedBits is the packed bit storage component: one bit per slot,
// packed into 64-bit words. It is built once from a BitSource and never
// mutated afterwards.
type packedBits struct {
	words []uint64
	n     uint64
}

func newPackedBits(n uint64, src BitSource) *packedBits {
	pb := &packedBits{
		words: make([]uint64, wordsFor(n)),
		n:     n,
	}
	for i := uint64(0); i < n; i++ {
		if src.Next() {
			pb.setBit(i)
		}
	}
	return pb
}

func wordsFor(n uint64) uint64 {
	return (n + wordBits - 1) / wordBits
}

func (pb *packedBits) setBit(i uint64) {
	pb.words[i/wordBits] |= 1 << (i % wordBits)
}

// size returns N, the number of stored bits.
func (pb *packedBits) size() uint64 {
	return pb.n
}

// get reads bit i. The caller is responsible for bounds checking; this is
// the hot path and stays allocation- and error-free.
func (pb *packedBits) get(i uint64) bool {
	return (pb.words[i/wordBits]>>(i%wordBits))&1 == 1
}

// ones lazily yields every position with a set bit, in ascending order.
func (pb *packedBits) ones() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i := uint64(0); i < pb.n; i++ {
			if pb.get(i) && !yield(i) {
				return
			}
		}
	}
}

// allocBytes reports the actual memory backing the word slice, distinct
// from the logical ceil(N/8) the format implies.
func (pb *packedBits) allocBytes() uint64 {
	return uint64(len(pb.words)) * 8
}
