package sbv

import "testing"

func TestFloorLog2(t *testing.T) {
	cases := map[uint64]uint64{
		0: 0, 1: 0, 2: 1, 3: 1, 4: 2, 7: 2, 8: 3, 1023: 9, 1024: 10,
	}
	for n, want := range cases {
		if got := floorLog2(n); got != want {
			t.Errorf("floorLog2(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestIsqrt(t *testing.T) {
	cases := map[uint64]uint64{
		0: 0, 1: 1, 3: 1, 4: 2, 8: 2, 9: 3, 99: 9, 100: 10,
	}
	for n, want := range cases {
		if got := isqrt(n); got != want {
			t.Errorf("isqrt(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestComputeParamsClampsDegenerateSizes(t *testing.T) {
	for _, n := range []uint64{0, 1} {
		p := computeParams(n, popcountCeiling)
		if p.large != 1 {
			t.Errorf("n=%d: large = %d, want 1", n, p.large)
		}
		if p.small != 1 {
			t.Errorf("n=%d: small = %d, want 1", n, p.small)
		}
		if p.sel != 1 {
			t.Errorf("n=%d: sel = %d, want 1", n, p.sel)
		}
		if p.k < 2 {
			t.Errorf("n=%d: k = %d, want >= 2", n, p.k)
		}
	}
}

func TestComputeParamsGrowsWithN(t *testing.T) {
	small := computeParams(1<<10, popcountCeiling)
	big := computeParams(1<<20, popcountCeiling)

	if big.large <= small.large {
		t.Errorf("large block width should grow with N: small=%d big=%d", small.large, big.large)
	}
	if big.small < small.small {
		t.Errorf("small block width should not shrink with N: small=%d big=%d", small.small, big.small)
	}
	if big.small > 63 {
		t.Errorf("small block width must fit a 64-bit word minus one bit, got %d", big.small)
	}
}

// TestSmallDividesLarge guards against small blocks straddling a
// large-block boundary: RS resets only at large-block edges, so rank is
// only correct when every small block lies entirely inside one large
// block, i.e. s evenly divides L. floorLog2(N) odd and >= 5 is exactly
// where an independently-floored s used to fail to divide L.
func TestSmallDividesLarge(t *testing.T) {
	sizes := []uint64{0, 1, 2, 17, 200, 777, 2048, 3000, 4001, 50000, 1 << 20}
	for _, n := range sizes {
		p := computeParams(n, popcountCeiling)
		if p.large%p.small != 0 {
			t.Errorf("n=%d: large=%d not a multiple of small=%d", n, p.large, p.small)
		}
	}
}
