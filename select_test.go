package sbv

import "testing"

func TestClassifyBlockSparseVsDense(t *testing.T) {
	// 4 ones packed at the start of a 100-bit span: span(100) > tspar(10)
	// forces the sparse branch.
	bits := make([]bool, 100)
	onePositions := []uint64{0, 1, 2, 3}
	for _, p := range onePositions {
		bits[p] = true
	}
	pb := newPackedBits(100, NewSliceBitSource(bits))

	block := classifyBlock(0, 99, 10, 4, func(uint64) uint64 { return 0 }, pb)
	if block.dense {
		t.Fatalf("expected sparse classification for span 100 > tspar 10")
	}
	if len(block.sparse) != len(onePositions) {
		t.Fatalf("sparse block has %d entries, want %d", len(block.sparse), len(onePositions))
	}
	for i, want := range onePositions {
		if block.sparse[i] != want {
			t.Errorf("sparse[%d] = %d, want %d", i, block.sparse[i], want)
		}
	}
}

func TestClassifyBlockDenseWhenSpanFitsThreshold(t *testing.T) {
	n := uint64(20)
	bits := make([]bool, n)
	for i := uint64(0); i < n; i += 2 {
		bits[i] = true
	}
	pb := newPackedBits(n, NewSliceBitSource(bits))
	p := computeParams(n, popcountCeiling)

	rd, anchors, total := buildRankDirectory(pb, p, buildPopcountTable(p.small, p.popcountCeiling))
	if total == 0 {
		t.Fatal("expected some ones")
	}

	block := classifyBlock(0, n-1, 1000, p.k, rd.rank, pb)
	if !block.dense {
		t.Fatalf("expected dense classification for span %d <= tspar 1000", n)
	}
	if block.tree == nil {
		t.Fatal("dense block missing tree root")
	}

	_ = anchors
}

func TestDenseTreeDescendMatchesLinearScan(t *testing.T) {
	n := uint64(500)
	bits := make([]bool, n)
	for i := uint64(0); i < n; i++ {
		if i%3 == 0 {
			bits[i] = true
		}
	}
	pb := newPackedBits(n, NewSliceBitSource(bits))
	p := computeParams(n, popcountCeiling)
	rd, _, total := buildRankDirectory(pb, p, buildPopcountTable(p.small, p.popcountCeiling))

	tree := buildDenseTree(0, n-1, p.k, rd.rank)

	seen := 0
	for i := uint64(0); i < n; i++ {
		if !bits[i] {
			continue
		}
		pos, err := tree.descend(uint64(seen), pb)
		if err != nil {
			t.Fatalf("descend(%d): %v", seen, err)
		}
		if pos != i {
			t.Errorf("descend(%d) = %d, want %d", seen, pos, i)
		}
		seen++
	}
	if uint64(seen) != total {
		t.Fatalf("scanned %d ones, rank directory reports %d", seen, total)
	}
}
