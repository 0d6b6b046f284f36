package bptree

import (
	"slices"

	"github.com/npillmayer/bptree/arena"
)

// Insert stores value for key. If key was already present, its value is
// replaced and the previous value is returned with replaced == true.
func (t *Tree[K, V]) Insert(key K, value V) (old V, replaced bool) {
	if t.IsEmpty() {
		t.plantRoot(key, value)
		return old, false
	}
	h := t.searchToLeaf(key)
	leaf := t.node(h)
	i, found := t.search(leaf.keys, key)
	if found {
		old = leaf.vals[i]
		leaf.vals[i] = value
		return old, true
	}
	t.insertIntoLeaf(h, i, key, value)
	return old, false
}

// insertIntoLeaf puts a new entry at slot i of leaf h and resolves a
// resulting overflow.
func (t *Tree[K, V]) insertIntoLeaf(h arena.Handle, i int, key K, value V) {
	leaf := t.node(h)
	leaf.keys = slices.Insert(leaf.keys, i, key)
	leaf.vals = slices.Insert(leaf.vals, i, value)
	t.count++
	if i == 0 {
		t.repairMinKey(h)
	}
	if t.overflows(leaf) {
		t.promote(h)
	}
}

// repairMinKey propagates the minimum key of leaf h to the one separator
// which routes to it: walking upwards, the first ancestor edge which is not
// a leftmost child carries it.
func (t *Tree[K, V]) repairMinKey(h arena.Handle) {
	leaf := t.node(h)
	if len(leaf.keys) == 0 {
		return
	}
	key := leaf.keys[0]
	for child := h; ; {
		c := t.node(child)
		if c.parent.IsNil() {
			return
		}
		p := t.node(c.parent)
		if slot := t.childIndex(p, child); slot > 0 {
			p.keys[slot-1] = key
			return
		}
		child = c.parent
	}
}

// promote resolves an overflowing node h. It first tries to even up with a
// sibling, then splits h and inserts the new sibling into the parent, which
// may in turn overflow.
func (t *Tree[K, V]) promote(h arena.Handle) {
	n := t.node(h)
	if !n.parent.IsNil() && t.redistributeOverflow(h) {
		return
	}
	var sibling arena.Handle
	var sep K
	if n.leaf {
		sibling, sep = t.splitLeaf(h)
	} else {
		sibling, sep = t.splitInner(h)
	}
	if n.parent.IsNil() {
		t.growRoot(h, sibling, sep)
		return
	}
	ph := n.parent
	p := t.node(ph)
	slot := t.childIndex(p, h)
	p.keys = slices.Insert(p.keys, slot, sep)
	p.children = slices.Insert(p.children, slot+1, sibling)
	if t.overflows(p) {
		t.promote(ph)
	}
}

// redistributeOverflow evens up overflowing node h with its left sibling or,
// failing that, its right sibling, if the sibling has room.
func (t *Tree[K, V]) redistributeOverflow(h arena.Handle) bool {
	ph := t.node(h).parent
	p := t.node(ph)
	slot := t.childIndex(p, h)
	if slot > 0 && t.hasRoom(p.children[slot-1]) {
		t.evenUp(ph, slot-1)
		return true
	}
	if slot+1 < len(p.children) && t.hasRoom(p.children[slot+1]) {
		t.evenUp(ph, slot)
		return true
	}
	return false
}

// splitLeaf moves the upper half of leaf h into a new right sibling and links
// it into the leaf chain. Returns the sibling and its minimum key.
func (t *Tree[K, V]) splitLeaf(h arena.Handle) (arena.Handle, K) {
	leaf := t.node(h)
	mid := len(leaf.keys) / 2
	rh, right := t.newLeaf(leaf.parent)
	right.keys = append(right.keys, leaf.keys[mid:]...)
	right.vals = append(right.vals, leaf.vals[mid:]...)
	leaf.keys = truncate(leaf.keys, mid)
	leaf.vals = truncate(leaf.vals, mid)
	right.next = leaf.next
	leaf.next = rh
	if t.last == h {
		t.last = rh
	}
	tracer().Debugf("bptree: split leaf %d, new sibling %d", h, rh)
	return rh, right.keys[0]
}

// splitInner moves the upper half of the children of inner node h into a new
// right sibling. The separator between the halves moves up and is returned.
func (t *Tree[K, V]) splitInner(h arena.Handle) (arena.Handle, K) {
	inner := t.node(h)
	mid := (len(inner.children) + 1) / 2
	sep := inner.keys[mid-1]
	rh, right := t.newInner(inner.parent)
	right.children = append(right.children, inner.children[mid:]...)
	right.keys = append(right.keys, inner.keys[mid:]...)
	inner.children = truncate(inner.children, mid)
	inner.keys = truncate(inner.keys, mid-1)
	t.adopt(rh, right.children)
	tracer().Debugf("bptree: split inner node %d, new sibling %d", h, rh)
	return rh, sep
}

// growRoot puts a new root above the former root and its split-off sibling.
func (t *Tree[K, V]) growRoot(left, right arena.Handle, sep K) {
	rh, root := t.newInner(arena.Nil)
	root.keys = append(root.keys, sep)
	root.children = append(root.children, left, right)
	t.adopt(rh, root.children)
	t.root = rh
	t.height++
	tracer().Debugf("bptree: root grows to height %d", t.height)
}
