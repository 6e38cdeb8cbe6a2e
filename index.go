// Package sbv implements a succinct bit-vector index: a structure that
// stores N bits and answers Rank and Select queries in sublinear or
// constant time, using o(N) auxiliary space on top of the packed bits.
//
// The index is built once from a BitSource and is immutable and safe for
// concurrent readers thereafter. There is no mutation API and no
// persistence: build a new index from a new bit source instead.
package sbv

import "iter"

// Index is a constructed succinct bit-vector index. The zero value is not
// usable; build one with Construct.
type Index struct {
	bits     *packedBits
	params   params
	pop      *popcountTable
	rankDir  *rankDirectory
	anchors  []uint64
	blocks   []selectBlock
	totalOne uint64
}

// Option configures Construct. Any setting not overridden by an Option
// keeps its documented default.
type Option func(*options)

type options struct {
	parallelBuild   bool
	popcountCeiling uint64
}

func defaultOptions() options {
	return options{
		parallelBuild:   true,
		popcountCeiling: popcountCeiling,
	}
}

// WithParallelBuild controls whether block classification (the second
// construction pass) runs across a bounded worker pool. Enabled by
// default; query results are identical either way.
func WithParallelBuild(enabled bool) Option {
	return func(o *options) { o.parallelBuild = enabled }
}

// WithPopcountCeiling overrides the small-block-width safety ceiling past
// which the popcount table is skipped in favor of a hardware popcount
// intrinsic. Default 16.
func WithPopcountCeiling(ceiling uint) Option {
	return func(o *options) { o.popcountCeiling = uint64(ceiling) }
}

// Construct builds an Index over n bits drawn from src, in order. n must be
// non-negative; n == 0 and n == 1 are valid degenerate sizes.
func Construct(n int64, src BitSource, opts ...Option) (*Index, error) {
	if n < 0 {
		return nil, invalidSizef("construct: n=%d is negative", n)
	}
	if src == nil {
		return nil, invalidSizef("construct: bit source is nil")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	un := uint64(n)
	p := computeParams(un, o.popcountCeiling)

	bits := newPackedBits(un, src)
	pop := buildPopcountTable(p.small, o.popcountCeiling)
	rankDir, anchors, totalOnes := buildRankDirectory(bits, p, pop)
	blocks := buildSelectBlocks(anchors, un, p.tspar, p.k, rankDir.rank, bits, o.parallelBuild)

	return &Index{
		bits:     bits,
		params:   p,
		pop:      pop,
		rankDir:  rankDir,
		anchors:  anchors,
		blocks:   blocks,
		totalOne: totalOnes,
	}, nil
}

// Size returns N, the number of bits in the index.
func (ix *Index) Size() uint64 {
	return ix.bits.size()
}

// TotalOnes returns the total number of one-bits.
func (ix *Index) TotalOnes() uint64 {
	return ix.totalOne
}

// Bit returns the bit at position i. 0 <= i < Size() or ErrOutOfRange.
func (ix *Index) Bit(i uint64) (bool, error) {
	if i >= ix.bits.size() {
		return false, outOfRangef("bit(%d): size=%d", i, ix.bits.size())
	}
	return ix.bits.get(i), nil
}

// Rank returns the number of one-bits in B[0..i], inclusive. 0 <= i <
// Size(), else ErrOutOfRange.
func (ix *Index) Rank(i uint64) (uint64, error) {
	if i >= ix.bits.size() {
		return 0, outOfRangef("rank(%d): size=%d", i, ix.bits.size())
	}
	return ix.rankDir.rank(i), nil
}

// Select returns the 0-based position of the k-th one-bit (1-indexed). 1
// <= k <= TotalOnes(), else ErrOutOfRange.
func (ix *Index) Select(k uint64) (uint64, error) {
	if k < 1 || k > ix.totalOne {
		return 0, outOfRangef("select(%d): total ones=%d", k, ix.totalOne)
	}
	return resolveSelect(ix.blocks, ix.params.sel, k-1, ix.bits)
}

// Ones lazily yields every position with a set bit, in ascending order.
func (ix *Index) Ones() iter.Seq[uint64] {
	return ix.bits.ones()
}
