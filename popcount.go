package sbv

import "math/bits"

// popcountTable is the precomputed population-count lookup. For
// small-block widths s within the safety ceiling it holds one byte per
// entry in [0, 2^s); past the ceiling it is left empty and lookups fall
// through to the hardware popcount intrinsic instead.
type popcountTable struct {
	table []uint8 // nil when s exceeds the ceiling
	width uint64
}

func buildPopcountTable(s uint64, ceiling uint64) *popcountTable {
	if s > ceiling {
		return &popcountTable{width: s}
	}
	size := uint64(1) << s
	table := make([]uint8, size)
	for x := uint64(0); x < size; x++ {
		table[x] = uint8(bits.OnesCount64(x))
	}
	return &popcountTable{table: table, width: s}
}

func (p *popcountTable) lookup(x uint64) uint64 {
	if p.table == nil {
		return uint64(bits.OnesCount64(x))
	}
	return uint64(p.table[x])
}

func (p *popcountTable) allocBytes() uint64 {
	return uint64(len(p.table))
}

func (p *popcountTable) entries() int {
	return len(p.table)
}
