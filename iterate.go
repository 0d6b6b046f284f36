package bptree

import (
	"iter"
)

// Select yields the entries with keys inside r in ascending key order.
//
// The sequence is lazy: the lower bound is resolved when iteration starts
// and leaves are visited one after the other along the leaf chain. An empty
// or inverted range yields nothing. The tree must not be modified while the
// sequence is being iterated.
func (t *Tree[K, V]) Select(r Range[K]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		h, i := t.seek(r.Lo)
		for !h.IsNil() {
			leaf := t.node(h)
			for ; i < len(leaf.keys); i++ {
				if !t.belowHi(leaf.keys[i], r.Hi) {
					return
				}
				if !yield(leaf.keys[i], leaf.vals[i]) {
					return
				}
			}
			h, i = leaf.next, 0
		}
	}
}

// SelectValues yields the values of entries with keys inside r, in key order.
func (t *Tree[K, V]) SelectValues(r Range[K]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.Select(r) {
			if !yield(v) {
				return
			}
		}
	}
}

// All yields every entry in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return t.Select(Full[K]())
}

// Keys yields every key in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields every value in ascending key order.
func (t *Tree[K, V]) Values() iter.Seq[V] {
	return t.SelectValues(Full[K]())
}

// Drain yields every entry in ascending key order and leaves the tree empty
// once iteration ends, whether it ran to completion or stopped early.
func (t *Tree[K, V]) Drain() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		defer t.Clear()
		for h := t.first; !h.IsNil(); {
			leaf := t.node(h)
			for i := range leaf.keys {
				if !yield(leaf.keys[i], leaf.vals[i]) {
					return
				}
			}
			h = leaf.next
		}
	}
}
