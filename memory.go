package sbv

// ComponentMemory reports the size of one directory or pool inside the
// index: how many entries it holds, how large each entry is, and the total
// bytes it occupies. This gives an external driver enough introspection to
// compute memory usage without reaching into internals.
type ComponentMemory struct {
	Name         string
	Entries      int
	ElementBytes int
	TotalBytes   uint64
}

// MemoryReport breaks the index's footprint down per component.
type MemoryReport struct {
	Components []ComponentMemory
}

// Total sums every component's bytes.
func (r MemoryReport) Total() uint64 {
	var total uint64
	for _, c := range r.Components {
		total += c.TotalBytes
	}
	return total
}

// MemoryReport computes the per-component memory breakdown: packed bits,
// the popcount table, each rank-directory array, the select-anchor list,
// and the aggregate size of every select-block resolver (dense trees and
// sparse arrays reported separately, since they trade off against each
// other).
func (ix *Index) MemoryReport() MemoryReport {
	var denseBytes, sparseBytes uint64
	var denseBlocks, sparseBlocks int
	for _, b := range ix.blocks {
		if b.dense {
			denseBytes += b.allocBytes()
			denseBlocks++
		} else {
			sparseBytes += b.allocBytes()
			sparseBlocks++
		}
	}

	return MemoryReport{Components: []ComponentMemory{
		{Name: "packed-bits", Entries: len(ix.bits.words), ElementBytes: 8, TotalBytes: ix.bits.allocBytes()},
		{Name: "popcount-table", Entries: ix.pop.entries(), ElementBytes: 1, TotalBytes: ix.pop.allocBytes()},
		{Name: "rank-large (RL)", Entries: len(ix.rankDir.rl), ElementBytes: 8, TotalBytes: uint64(len(ix.rankDir.rl)) * 8},
		{Name: "rank-small (RS)", Entries: len(ix.rankDir.rs), ElementBytes: 8, TotalBytes: uint64(len(ix.rankDir.rs)) * 8},
		{Name: "rank-key (K)", Entries: len(ix.rankDir.k), ElementBytes: 8, TotalBytes: uint64(len(ix.rankDir.k)) * 8},
		{Name: "select-anchors (A)", Entries: len(ix.anchors), ElementBytes: 8, TotalBytes: uint64(len(ix.anchors)) * 8},
		{Name: "select-dense-trees", Entries: denseBlocks, ElementBytes: 0, TotalBytes: denseBytes},
		{Name: "select-sparse-blocks", Entries: sparseBlocks, ElementBytes: 0, TotalBytes: sparseBytes},
	}}
}
