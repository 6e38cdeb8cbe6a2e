package sbv

import "math/bits"

// popcountCeiling is the default safety ceiling on the small-block width s.
// Past this width the 2^s-entry popcount table would grow uncomfortably
// large, so rank falls back to a hardware popcount intrinsic instead.
const popcountCeiling = 16

// params holds the block-size parameters derived once from N at
// construction time. They never change after Construct returns.
type params struct {
	n uint64

	large uint64 // L: large-block width, in bits
	small uint64 // s: small-block width, in bits
	sel   uint64 // B: select-block size, in one-bits (== large)
	k     uint64 // k: dense select-tree branch factor
	tspar uint64 // Tsparse: sparse-block byte-span threshold

	popcountCeiling uint64
}

// floorLog2 returns floor(log2(n)) for n >= 1, and 0 for n == 0.
func floorLog2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return uint64(bits.Len64(n) - 1)
}

// isqrt returns floor(sqrt(n)) using integer-only Newton's method.
func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// largestDivisorAtMost returns the largest d in [1, max] that evenly divides
// n. n is always >= 1 here (large clamps to >= 1), so 1 always qualifies
// and the search terminates.
func largestDivisorAtMost(n, max uint64) uint64 {
	if max > n {
		max = n
	}
	for d := max; d > 1; d-- {
		if n%d == 0 {
			return d
		}
	}
	return 1
}

func computeParams(n uint64, ceiling uint64) params {
	logN := floorLog2(n)

	large := logN * logN
	if large < 1 {
		large = 1
	}

	desiredSmall := logN / 2
	if desiredSmall < 1 {
		desiredSmall = 1
	}
	if desiredSmall > 63 {
		desiredSmall = 63
	}

	// s must evenly divide L: the rank directory resets RS (the
	// within-large-block running count) only at large-block boundaries,
	// so a small block that straddled one would be scored against the
	// wrong large block. Pinning s to a divisor of L keeps every small
	// block entirely inside one large block.
	small := largestDivisorAtMost(large, desiredSmall)

	k := isqrt(logN)
	if k < 2 {
		k = 2
	}

	tspar := large * large
	if tspar < 1 {
		tspar = 1
	}

	return params{
		n:               n,
		large:           large,
		small:           small,
		sel:             large,
		k:               k,
		tspar:           tspar,
		popcountCeiling: ceiling,
	}
}
