package bptree

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/bptree/arena"
)

// PushFront inserts an entry whose key is smaller than every key in the tree,
// skipping the descent from the root. It panics if key is not smaller than the
// current minimum.
func (t *Tree[K, V]) PushFront(key K, value V) {
	if t.IsEmpty() {
		t.plantRoot(key, value)
		return
	}
	leaf := t.node(t.first)
	assert(t.cfg.Compare(key, leaf.keys[0]) < 0, "bptree: PushFront key not below minimum")
	t.insertIntoLeaf(t.first, 0, key, value)
}

// PushBack inserts an entry whose key is greater than every key in the tree,
// skipping the descent from the root. It panics if key is not greater than the
// current maximum.
func (t *Tree[K, V]) PushBack(key K, value V) {
	if t.IsEmpty() {
		t.plantRoot(key, value)
		return
	}
	leaf := t.node(t.last)
	n := len(leaf.keys)
	assert(t.cfg.Compare(key, leaf.keys[n-1]) > 0, "bptree: PushBack key not above maximum")
	t.insertIntoLeaf(t.last, n, key, value)
}

// BulkPushBack appends a strictly ascending sequence of entries, all greater
// than the current maximum.
func (t *Tree[K, V]) BulkPushBack(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		t.PushBack(k, v)
	}
}

// BulkPushFront prepends a strictly ascending sequence of entries, all
// smaller than the current minimum. The sequence is buffered and pushed
// from its end.
func (t *Tree[K, V]) BulkPushFront(seq iter.Seq2[K, V]) {
	var buf []Entry[K, V]
	for k, v := range seq {
		buf = append(buf, Entry[K, V]{Key: k, Value: v})
	}
	for i := len(buf) - 1; i >= 0; i-- {
		t.PushFront(buf[i].Key, buf[i].Value)
	}
}

// BulkPopLast removes up to n entries from the top end of the tree and
// returns them in the order they were popped, i.e. descending.
func (t *Tree[K, V]) BulkPopLast(n int) []Entry[K, V] {
	n = min(max(n, 0), t.Len())
	popped := make([]Entry[K, V], 0, n)
	for range n {
		k, v, _ := t.PopLast()
		popped = append(popped, Entry[K, V]{Key: k, Value: v})
	}
	return popped
}

// BulkPopFirst removes up to n entries from the bottom end of the tree and
// returns them in ascending order.
func (t *Tree[K, V]) BulkPopFirst(n int) []Entry[K, V] {
	n = min(max(n, 0), t.Len())
	popped := make([]Entry[K, V], 0, n)
	for range n {
		k, v, _ := t.PopFirst()
		popped = append(popped, Entry[K, V]{Key: k, Value: v})
	}
	return popped
}

// SplitOff moves the entries at positions at..Len()-1 into a new tree with
// the same configuration and returns it. It panics if at is out of range.
func (t *Tree[K, V]) SplitOff(at int) *Tree[K, V] {
	assert(at >= 0 && at <= t.Len(), "bptree: SplitOff position out of range")
	other := t.emptyLike()
	for t.Len() > at {
		k, v, _ := t.PopLast()
		other.PushFront(k, v)
	}
	return other
}

// BulkBuild constructs a tree bottom-up from a strictly ascending sequence.
//
// Leaves are filled to about the middle of their admissible occupancy, so
// that subsequent inserts and removes do not immediately split or merge.
// Inner levels are then built the same way until a single root remains.
// Input which is not strictly ascending is rejected with ErrUnsortedInput.
func BulkBuild[K, V any](cfg Config[K], seq iter.Seq2[K, V]) (*Tree[K, V], error) {
	t, err := New[K, V](cfg)
	if err != nil {
		return nil, err
	}
	var keys []K
	var vals []V
	for k, v := range seq {
		if n := len(keys); n > 0 && t.cfg.Compare(keys[n-1], k) >= 0 {
			return nil, errors.Wrapf(ErrUnsortedInput, "entry #%d", n)
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
	if len(keys) == 0 {
		return t, nil
	}
	// leaf level
	sizes := groupSizes(len(keys), t.minLeafEntries(), t.maxLeafEntries())
	level := make([]arena.Handle, 0, len(sizes))
	mins := make([]K, 0, len(sizes))
	var prev *node[K, V]
	off := 0
	for _, sz := range sizes {
		h, leaf := t.newLeaf(arena.Nil)
		leaf.keys = append(leaf.keys, keys[off:off+sz]...)
		leaf.vals = append(leaf.vals, vals[off:off+sz]...)
		if prev != nil {
			prev.next = h
		}
		prev = leaf
		level = append(level, h)
		mins = append(mins, keys[off])
		off += sz
	}
	t.first, t.last = level[0], level[len(level)-1]
	t.count = len(keys)
	t.height = 1
	// inner levels
	for len(level) > 1 {
		sizes = groupSizes(len(level), t.minChildren(), t.maxChildren())
		upper := make([]arena.Handle, 0, len(sizes))
		upperMins := make([]K, 0, len(sizes))
		off = 0
		for _, sz := range sizes {
			h, inner := t.newInner(arena.Nil)
			inner.children = append(inner.children, level[off:off+sz]...)
			inner.keys = append(inner.keys, mins[off+1:off+sz]...)
			t.adopt(h, inner.children)
			upper = append(upper, h)
			upperMins = append(upperMins, mins[off])
			off += sz
		}
		level, mins = upper, upperMins
		t.height++
	}
	t.root = level[0]
	tracer().Debugf("bptree: bulk build of %d entries, height %d", t.count, t.height)
	return t, nil
}

// groupSizes cuts n items into groups of near-equal size within [lo, hi],
// aiming at the middle of the interval. Fewer than lo items form a single
// group, which can only be a root.
func groupSizes(n, lo, hi int) []int {
	target := (lo + hi + 1) / 2
	groups := (n + target - 1) / target
	if lo > 0 && groups > n/lo {
		groups = n / lo
	}
	groups = max(groups, 1)
	sizes := make([]int, groups)
	base, extra := n/groups, n%groups
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}
