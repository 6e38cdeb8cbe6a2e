package sbv

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// denseNode is one node of a k-ary cumulative-count search tree covering a
// contiguous interval of bit positions inside a dense select-block.
// Parents exclusively own their children: there is no sharing and no
// back-pointer, so the whole subtree is released the moment its block's
// root becomes unreachable.
type denseNode struct {
	startPos    uint64
	size        uint64
	childCounts []uint64
	children    []*denseNode
}

func (n *denseNode) isLeaf() bool {
	return len(n.children) == 0
}

// buildDenseTree recursively builds a k-ary cumulative-count tree. rank must already
// answer correctly for every position in [lo, hi]; it is the already-built
// rank directory, used here purely as a subroutine to compute each child's
// one-count via rank(childHi) - rank(childLo - 1).
func buildDenseTree(lo, hi, k uint64, rank func(uint64) uint64) *denseNode {
	n := hi - lo + 1
	if n <= k {
		return &denseNode{startPos: lo, size: n}
	}

	w := ceilDiv(n, k)
	node := &denseNode{startPos: lo, size: n}

	var runningPrefix uint64
	for c := uint64(0); lo+c*w <= hi; c++ {
		childLo := lo + c*w
		childHi := childLo + w - 1
		if childHi > hi {
			childHi = hi
		}

		node.childCounts = append(node.childCounts, runningPrefix)
		node.children = append(node.children, buildDenseTree(childLo, childHi, k, rank))

		var count uint64
		if childLo == 0 {
			count = rank(childHi)
		} else {
			count = rank(childHi) - rank(childLo-1)
		}
		runningPrefix += count
	}
	return node
}

// descend resolves the 0-based rank r to an absolute bit position within
// this node's interval by walking down to a leaf and then linear-scanning
// it. pb supplies the leaf-level bit scan.
func (n *denseNode) descend(r uint64, pb *packedBits) (uint64, error) {
	node := n
	for !node.isLeaf() {
		c := len(node.childCounts) - 1
		for c > 0 && node.childCounts[c] > r {
			c--
		}
		r -= node.childCounts[c]
		node = node.children[c]
	}

	for pos := node.startPos; pos < node.startPos+node.size; pos++ {
		if pb.get(pos) {
			if r == 0 {
				return pos, nil
			}
			r--
		}
	}
	return 0, corruptedf(
		"select: dense leaf [%d,%d) exhausted with r=%d bits still unaccounted for",
		node.startPos, node.startPos+node.size, r,
	)
}

func (n *denseNode) allocBytes() uint64 {
	total := uint64(16) + uint64(len(n.childCounts))*8
	for _, c := range n.children {
		total += c.allocBytes()
	}
	return total
}

// selectBlock is one select-block's resolver: either a dense tree or an
// explicit sparse position array.
type selectBlock struct {
	dense  bool
	tree   *denseNode
	sparse []uint64 // Sblock[q], used only when !dense
}

func (b selectBlock) allocBytes() uint64 {
	if b.dense {
		return b.tree.allocBytes()
	}
	return uint64(len(b.sparse)) * 8
}

// classifyBlock builds the resolver for select-block [start, end]: a
// sparse position array when the block's span exceeds tspar, a dense
// k-ary tree otherwise.
func classifyBlock(start, end, tspar, k uint64, rank func(uint64) uint64, pb *packedBits) selectBlock {
	if end-start+1 > tspar {
		var sparse []uint64
		for pos := start; pos <= end; pos++ {
			if pb.get(pos) {
				sparse = append(sparse, pos)
			}
		}
		return selectBlock{sparse: sparse}
	}
	return selectBlock{dense: true, tree: buildDenseTree(start, end, k, rank)}
}

// buildSelectBlocks runs the classifier over every select-block anchored in
// anchors. When parallel is true, it exercises the bounded-parallelism
// option: one goroutine per block, each writing into
// its own pre-sized, exclusively-owned slot, bounded by GOMAXPROCS workers.
func buildSelectBlocks(anchors []uint64, n, tspar, k uint64, rank func(uint64) uint64, pb *packedBits, parallel bool) []selectBlock {
	numBlocks := len(anchors)
	if numBlocks == 0 {
		return nil
	}

	blocks := make([]selectBlock, numBlocks)
	blockBounds := func(q int) (uint64, uint64) {
		start := anchors[q]
		if q+1 < numBlocks {
			return start, anchors[q+1] - 1
		}
		return start, n - 1
	}

	if !parallel || numBlocks < 2 {
		for q := 0; q < numBlocks; q++ {
			start, end := blockBounds(q)
			blocks[q] = classifyBlock(start, end, tspar, k, rank, pb)
		}
		return blocks
	}

	g := new(errgroup.Group)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))
	for q := 0; q < numBlocks; q++ {
		g.Go(func() error {
			start, end := blockBounds(q)
			blocks[q] = classifyBlock(start, end, tspar, k, rank, pb)
			return nil
		})
	}
	_ = g.Wait() // classifyBlock never errors; each goroutine owns exactly one slot

	return blocks
}

// resolveSelect locates the select-block holding the (rankMinusOne+1)-th
// one-bit, then resolves the position within it.
func resolveSelect(blocks []selectBlock, sel, rankMinusOne uint64, pb *packedBits) (uint64, error) {
	q := rankMinusOne / sel
	r := rankMinusOne % sel

	if q >= uint64(len(blocks)) {
		return 0, corruptedf("select: computed block %d but only %d blocks exist", q, len(blocks))
	}

	block := blocks[q]
	if !block.dense {
		if r >= uint64(len(block.sparse)) {
			return 0, corruptedf("select: sparse block %d holds %d entries, requested r=%d", q, len(block.sparse), r)
		}
		return block.sparse[r], nil
	}
	return block.tree.descend(r, pb)
}
