package bptree

// Rank returns the zero-based position of key in key order. If key is
// absent, Rank returns the position at which it would be inserted and
// found == false.
//
// Nodes keep no subtree counts, so Rank walks the leaf chain behind the
// position of key.
func (t *Tree[K, V]) Rank(key K) (idx int, found bool) {
	if t.IsEmpty() {
		return 0, false
	}
	h := t.searchToLeaf(key)
	leaf := t.node(h)
	i, found := t.search(leaf.keys, key)
	behind := len(leaf.keys) - i
	for h = leaf.next; !h.IsNil(); h = t.node(h).next {
		behind += len(t.node(h).keys)
	}
	return t.count - behind, found
}

// Nth returns the entry at zero-based position i in key order.
func (t *Tree[K, V]) Nth(i int) (K, V, bool) {
	var k K
	var v V
	if i < 0 || i >= t.Len() {
		return k, v, false
	}
	for h := t.first; !h.IsNil(); {
		leaf := t.node(h)
		if i < len(leaf.keys) {
			return leaf.keys[i], leaf.vals[i], true
		}
		i -= len(leaf.keys)
		h = leaf.next
	}
	return k, v, false
}
