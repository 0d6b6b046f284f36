package bptree

import (
	"cmp"

	"github.com/npillmayer/bptree/arena"
)

// Tree is an ordered map from keys K to values V, organized as a B+ tree.
//
// The zero value is not usable; create trees with New or NewOrdered.
type Tree[K, V any] struct {
	cfg    Config[K]
	nodes  arena.Arena[node[K, V]]
	root   arena.Handle
	first  arena.Handle // leaf holding the minimum key
	last   arena.Handle // leaf holding the maximum key
	count  int
	height int // 0 means empty tree
}

// Entry is a key/value pair taken out of a tree.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// New creates an empty tree with validated configuration.
func New[K, V any](cfg Config[K]) (*Tree[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Tree[K, V]{cfg: cfg.normalized()}, nil
}

// NewOrdered creates an empty tree of order M for naturally ordered keys.
// It panics if order is less than MinOrder.
func NewOrdered[K cmp.Ordered, V any](order int) *Tree[K, V] {
	assert(order >= MinOrder, "bptree: order must be > 2")
	t, err := New[K, V](OrderedConfig[K](order))
	assert(err == nil, "bptree: cannot create tree")
	return t
}

// emptyLike returns an empty tree sharing the configuration of t.
func (t *Tree[K, V]) emptyLike() *Tree[K, V] {
	return &Tree[K, V]{cfg: t.cfg}
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[K, V]) Config() Config[K] {
	return t.cfg
}

// Len returns the number of entries in the tree.
func (t *Tree[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// IsEmpty reports whether the tree has no entries.
func (t *Tree[K, V]) IsEmpty() bool {
	return t == nil || t.root.IsNil()
}

// Height returns the tree height, where 0 means empty and 1 means a leaf root.
func (t *Tree[K, V]) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Clear removes all entries and releases every node.
func (t *Tree[K, V]) Clear() {
	t.nodes.Reset()
	t.root = arena.Nil
	t.first = arena.Nil
	t.last = arena.Nil
	t.count = 0
	t.height = 0
}

// Get returns the value stored for key.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	if p := t.GetPtr(key); p != nil {
		return *p, true
	}
	var zero V
	return zero, false
}

// GetPtr returns a pointer to the value stored for key, or nil if key is
// absent. The pointer is invalidated by the next mutation of the tree.
func (t *Tree[K, V]) GetPtr(key K) *V {
	if t.IsEmpty() {
		return nil
	}
	leaf := t.node(t.searchToLeaf(key))
	if i, found := t.search(leaf.keys, key); found {
		return &leaf.vals[i]
	}
	return nil
}

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.GetPtr(key) != nil
}

// MinKey returns the smallest key.
func (t *Tree[K, V]) MinKey() (K, bool) {
	k, _, ok := t.First()
	return k, ok
}

// MaxKey returns the largest key.
func (t *Tree[K, V]) MaxKey() (K, bool) {
	k, _, ok := t.Last()
	return k, ok
}

// First returns the entry with the smallest key.
func (t *Tree[K, V]) First() (K, V, bool) {
	if t.IsEmpty() {
		var k K
		var v V
		return k, v, false
	}
	leaf := t.node(t.first)
	return leaf.keys[0], leaf.vals[0], true
}

// Last returns the entry with the largest key.
func (t *Tree[K, V]) Last() (K, V, bool) {
	if t.IsEmpty() {
		var k K
		var v V
		return k, v, false
	}
	leaf := t.node(t.last)
	n := len(leaf.keys)
	return leaf.keys[n-1], leaf.vals[n-1], true
}

// plantRoot turns an empty tree into a single root leaf holding one entry.
func (t *Tree[K, V]) plantRoot(key K, value V) {
	assert(t.root.IsNil(), "plantRoot called on non-empty tree")
	h, leaf := t.newLeaf(arena.Nil)
	leaf.keys = append(leaf.keys, key)
	leaf.vals = append(leaf.vals, value)
	t.root, t.first, t.last = h, h, h
	t.count = 1
	t.height = 1
}
