package bptree

import (
	"github.com/npillmayer/bptree/arena"
)

// Remove deletes key from the tree and returns the value it was mapped to.
func (t *Tree[K, V]) Remove(key K) (V, bool) {
	var zero V
	if t.IsEmpty() {
		return zero, false
	}
	h, sepNode, sepSlot := t.searchTracking(key)
	leaf := t.node(h)
	i, found := t.search(leaf.keys, key)
	if !found {
		return zero, false
	}
	if !sepNode.IsNil() {
		// key is the minimum of its leaf and routes the subtree; the separator
		// takes over the successor, which becomes the new minimum.
		if succ, ok := t.successor(h, i); ok {
			t.node(sepNode).keys[sepSlot] = succ
		}
	}
	value := leaf.vals[i]
	t.removeFromLeaf(h, i)
	return value, true
}

// successor returns the key following slot i of leaf h.
func (t *Tree[K, V]) successor(h arena.Handle, i int) (K, bool) {
	leaf := t.node(h)
	if i+1 < len(leaf.keys) {
		return leaf.keys[i+1], true
	}
	if !leaf.next.IsNil() {
		return t.node(leaf.next).keys[0], true
	}
	var zero K
	return zero, false
}

// removeFromLeaf deletes slot i of leaf h and resolves a resulting underflow.
// Separators are expected to be repaired by the caller.
func (t *Tree[K, V]) removeFromLeaf(h arena.Handle, i int) {
	leaf := t.node(h)
	n := len(leaf.keys)
	copy(leaf.keys[i:], leaf.keys[i+1:])
	copy(leaf.vals[i:], leaf.vals[i+1:])
	leaf.keys = truncate(leaf.keys, n-1)
	leaf.vals = truncate(leaf.vals, n-1)
	t.count--
	if leaf.parent.IsNil() {
		if len(leaf.keys) == 0 {
			t.Clear()
		}
		return
	}
	if t.underflows(leaf) {
		t.unpromote(h)
	}
}

// unpromote resolves an underflowing node h: borrow from a sibling which can
// lend, else merge with a sibling. A merge removes a child from the parent,
// which may then underflow in turn. A root left with a single child is
// replaced by that child.
func (t *Tree[K, V]) unpromote(h arena.Handle) {
	n := t.node(h)
	if n.parent.IsNil() {
		if !n.leaf && len(n.children) == 1 {
			t.shrinkRoot()
		}
		return
	}
	ph := n.parent
	p := t.node(ph)
	slot := t.childIndex(p, h)
	hasLeft, hasRight := slot > 0, slot+1 < len(p.children)
	// borrow-left, borrow-right, merge-left, merge-right
	switch {
	case hasLeft && t.canLend(p.children[slot-1]):
		t.evenUp(ph, slot-1)
		return
	case hasRight && t.canLend(p.children[slot+1]):
		t.evenUp(ph, slot)
		return
	case hasLeft:
		t.merge(ph, slot-1)
	case hasRight:
		t.merge(ph, slot)
	default:
		assert(false, "unpromote: non-root node without siblings")
	}
	if t.underflows(p) {
		t.unpromote(ph)
	}
}

// shrinkRoot replaces an inner root having a single child by that child.
func (t *Tree[K, V]) shrinkRoot() {
	old := t.root
	child := t.node(old).children[0]
	t.node(child).parent = arena.Nil
	t.nodes.Free(old)
	t.root = child
	t.height--
	tracer().Debugf("bptree: root shrinks to height %d", t.height)
}

// PopFirst removes and returns the entry with the smallest key.
func (t *Tree[K, V]) PopFirst() (K, V, bool) {
	k, v, ok := t.First()
	if !ok {
		return k, v, false
	}
	// the global minimum never doubles as a separator
	t.removeFromLeaf(t.first, 0)
	return k, v, true
}

// PopLast removes and returns the entry with the largest key.
func (t *Tree[K, V]) PopLast() (K, V, bool) {
	k, v, ok := t.Last()
	if !ok {
		return k, v, false
	}
	t.removeFromLeaf(t.last, len(t.node(t.last).keys)-1)
	return k, v, true
}
