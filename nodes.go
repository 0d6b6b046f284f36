package bptree

import (
	"slices"

	"github.com/npillmayer/bptree/arena"
)

// node is either a leaf or an inner node, discriminated by the leaf flag.
//
// A leaf uses keys/vals (len(keys) == len(vals)) and next.
// An inner node uses keys/children with len(keys) == len(children)-1; keys[i]
// separates children[i] and children[i+1].
type node[K, V any] struct {
	leaf   bool
	parent arena.Handle // navigation only, Nil for the root
	keys   []K
	vals   []V
	// children are the owning edges of the tree.
	children []arena.Handle
	next     arena.Handle // leaf successor in key order, navigation only
}

func (t *Tree[K, V]) node(h arena.Handle) *node[K, V] {
	return t.nodes.Get(h)
}

// newLeaf allocates an empty leaf with room for a transient overflow entry.
func (t *Tree[K, V]) newLeaf(parent arena.Handle) (arena.Handle, *node[K, V]) {
	leaf := &node[K, V]{
		leaf:   true,
		parent: parent,
		keys:   make([]K, 0, t.cfg.Order),
		vals:   make([]V, 0, t.cfg.Order),
	}
	return t.nodes.Alloc(leaf), leaf
}

// newInner allocates an empty inner node with room for a transient overflow
// child.
func (t *Tree[K, V]) newInner(parent arena.Handle) (arena.Handle, *node[K, V]) {
	inner := &node[K, V]{
		parent:   parent,
		keys:     make([]K, 0, t.cfg.Order),
		children: make([]arena.Handle, 0, t.cfg.Order+1),
	}
	return t.nodes.Alloc(inner), inner
}

// adopt points the parent link of every child in children to h.
func (t *Tree[K, V]) adopt(h arena.Handle, children []arena.Handle) {
	for _, c := range children {
		t.node(c).parent = h
	}
}

// childIndex returns the slot of child in inner node p.
func (t *Tree[K, V]) childIndex(p *node[K, V], child arena.Handle) int {
	i := slices.Index(p.children, child)
	assert(i >= 0, "childIndex: node is not a child of its parent")
	return i
}

// search binary-searches keys for key. It returns the position of key or the
// position where it would be inserted.
func (t *Tree[K, V]) search(keys []K, key K) (int, bool) {
	return slices.BinarySearchFunc(keys, key, t.cfg.Compare)
}

// hasRoom reports whether node h can take over entries/children from an
// overflowing sibling.
func (t *Tree[K, V]) hasRoom(h arena.Handle) bool {
	n := t.node(h)
	if n.leaf {
		return len(n.keys) < t.maxLeafEntries()
	}
	return len(n.children) < t.maxChildren()
}

// canLend reports whether node h can hand entries/children to an underflowing
// sibling without underflowing itself.
func (t *Tree[K, V]) canLend(h arena.Handle) bool {
	n := t.node(h)
	if n.leaf {
		return len(n.keys) > t.minLeafEntries()
	}
	return len(n.children) > t.minChildren()
}

func (t *Tree[K, V]) overflows(n *node[K, V]) bool {
	if n.leaf {
		return len(n.keys) > t.maxLeafEntries()
	}
	return len(n.children) > t.maxChildren()
}

// underflows applies the lower occupancy bound. A root leaf never underflows
// (an empty root is dropped by the caller), a root inner node underflows when
// it is left with a single child.
func (t *Tree[K, V]) underflows(n *node[K, V]) bool {
	if n.parent.IsNil() {
		return !n.leaf && len(n.children) < 2
	}
	if n.leaf {
		return len(n.keys) < t.minLeafEntries()
	}
	return len(n.children) < t.minChildren()
}

// truncate shortens s to n elements, zeroing the tail so that moved-out
// keys and values are not retained by the backing array.
func truncate[T any](s []T, n int) []T {
	clear(s[n:])
	return s[:n]
}
