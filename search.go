package bptree

import "github.com/npillmayer/bptree/arena"

// searchToLeaf descends from the root to the leaf which holds key or would
// hold it. A key equal to a separator lives in the subtree right of it.
// Returns Nil for an empty tree.
func (t *Tree[K, V]) searchToLeaf(key K) arena.Handle {
	h := t.root
	for !h.IsNil() {
		n := t.node(h)
		if n.leaf {
			return h
		}
		i, found := t.search(n.keys, key)
		if found {
			i++
		}
		h = n.children[i]
	}
	return h
}

// searchTracking works like searchToLeaf and additionally returns the inner
// node and slot of the separator which equals key, if any. By the separator
// invariant there is at most one such separator on the path.
func (t *Tree[K, V]) searchTracking(key K) (leaf, sepNode arena.Handle, sepSlot int) {
	h := t.root
	for !h.IsNil() {
		n := t.node(h)
		if n.leaf {
			return h, sepNode, sepSlot
		}
		i, found := t.search(n.keys, key)
		if found {
			sepNode, sepSlot = h, i
			i++
		}
		h = n.children[i]
	}
	return arena.Nil, arena.Nil, 0
}

// seek resolves a lower bound to a leaf position: the first entry which the
// bound admits. Returns a Nil leaf if no entry qualifies.
func (t *Tree[K, V]) seek(lo Bound[K]) (arena.Handle, int) {
	if t.IsEmpty() {
		return arena.Nil, 0
	}
	if lo.kind == unbounded {
		return t.first, 0
	}
	h := t.searchToLeaf(lo.key)
	leaf := t.node(h)
	i, found := t.search(leaf.keys, lo.key)
	if found && lo.kind == excluded {
		i++
	}
	if i == len(leaf.keys) {
		return leaf.next, 0
	}
	return h, i
}
