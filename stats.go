package bptree

import "github.com/npillmayer/bptree/arena"

// Stats describes the shape of a tree.
type Stats struct {
	Len        int     // number of entries
	Height     int     // 0 for an empty tree
	Leaves     int     // number of leaf nodes
	Inner      int     // number of inner nodes
	FillFactor float64 // entries per leaf capacity, 0..1
	// arena bookkeeping
	ArenaSlots      int
	ArenaLive       int
	ArenaTombstones int
}

// Stats collects shape statistics by walking all nodes.
func (t *Tree[K, V]) Stats() Stats {
	st := Stats{
		Len:             t.Len(),
		Height:          t.Height(),
		ArenaSlots:      t.nodes.Slots(),
		ArenaLive:       t.nodes.Live(),
		ArenaTombstones: t.nodes.Tombstones(),
	}
	if t.IsEmpty() {
		return st
	}
	t.eachNode(t.root, func(_ arena.Handle, n *node[K, V]) {
		if n.leaf {
			st.Leaves++
		} else {
			st.Inner++
		}
	})
	st.FillFactor = float64(st.Len) / float64(st.Leaves*t.maxLeafEntries())
	return st
}
