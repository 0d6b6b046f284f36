package bptree

import (
	"github.com/cockroachdb/errors"
	"github.com/npillmayer/bptree/arena"
)

// Check validates the structural tree invariants: node occupancy, key
// order, separator keys, uniform leaf depth, parent and leaf-chain links,
// the cached entry count and height, and arena bookkeeping.
//
// Check is meant for tests and debugging. A non-nil result wraps
// ErrCorrupted and describes the first violation found.
func (t *Tree[K, V]) Check() error {
	err := t.check()
	if err != nil {
		tracer().Errorf("bptree: %v", err)
	}
	return err
}

type checker[K, V any] struct {
	t       *Tree[K, V]
	leaves  []arena.Handle
	visited map[arena.Handle]bool
}

func (t *Tree[K, V]) check() error {
	if t == nil {
		return errors.Wrap(ErrCorrupted, "nil tree")
	}
	if t.root.IsNil() {
		if t.height != 0 || t.count != 0 {
			return errors.Wrapf(ErrCorrupted, "empty tree with height=%d, len=%d", t.height, t.count)
		}
		if !t.first.IsNil() || !t.last.IsNil() {
			return errors.Wrap(ErrCorrupted, "empty tree with leaf chain ends")
		}
		if t.nodes.Live() != 0 {
			return errors.Wrapf(ErrCorrupted, "empty tree holds %d live nodes", t.nodes.Live())
		}
		return nil
	}
	if t.height <= 0 {
		return errors.Wrap(ErrCorrupted, "non-empty tree must have height > 0")
	}
	c := &checker[K, V]{t: t, visited: make(map[arena.Handle]bool)}
	_, items, height, err := c.checkNode(t.root, arena.Nil, nil, nil)
	if err != nil {
		return err
	}
	if height != t.height {
		return errors.Wrapf(ErrCorrupted, "height mismatch (%d != %d)", height, t.height)
	}
	if items != t.count {
		return errors.Wrapf(ErrCorrupted, "entry count mismatch (%d != %d)", items, t.count)
	}
	if len(c.visited) != t.nodes.Live() {
		var leaked arena.Handle
		t.nodes.Each(func(h arena.Handle, _ *node[K, V]) bool {
			if !c.visited[h] {
				leaked = h
				return false
			}
			return true
		})
		return errors.Wrapf(ErrCorrupted, "%d nodes reachable, %d allocated, node %d leaked",
			len(c.visited), t.nodes.Live(), leaked)
	}
	return c.checkLeafChain()
}

// checkNode validates the subtree at h. Keys of the subtree must lie in
// [lo, hi), where nil means unbounded. It returns the minimum key of the
// subtree, the number of entries and the height.
func (c *checker[K, V]) checkNode(h, parent arena.Handle, lo, hi *K) (minKey K, items int, height int, err error) {
	t := c.t
	if h.IsNil() || !t.nodes.IsLive(h) {
		return minKey, 0, 0, errors.Wrapf(ErrCorrupted, "dangling node handle %d", h)
	}
	if c.visited[h] {
		return minKey, 0, 0, errors.Wrapf(ErrCorrupted, "node %d is reachable twice", h)
	}
	c.visited[h] = true
	n := t.node(h)
	if n.parent != parent {
		return minKey, 0, 0, errors.Wrapf(ErrCorrupted, "node %d: parent link %d, expected %d", h, n.parent, parent)
	}
	isRoot := parent.IsNil()
	if n.leaf {
		if err = c.checkLeaf(h, n, isRoot, lo, hi); err != nil {
			return minKey, 0, 0, err
		}
		c.leaves = append(c.leaves, h)
		return n.keys[0], len(n.keys), 1, nil
	}
	if len(n.keys) != len(n.children)-1 {
		return minKey, 0, 0, errors.Wrapf(ErrCorrupted, "inner node %d: %d keys for %d children",
			h, len(n.keys), len(n.children))
	}
	if len(n.vals) != 0 || !n.next.IsNil() {
		return minKey, 0, 0, errors.Wrapf(ErrCorrupted, "inner node %d carries leaf data", h)
	}
	lower := t.minChildren()
	if isRoot {
		lower = 2
	}
	if len(n.children) < lower || len(n.children) > t.maxChildren() {
		return minKey, 0, 0, errors.Wrapf(ErrCorrupted, "inner node %d: child count %d outside [%d, %d]",
			h, len(n.children), lower, t.maxChildren())
	}
	if err = c.checkSorted(h, n.keys, lo, hi); err != nil {
		return minKey, 0, 0, err
	}
	var childHeight int
	for i, child := range n.children {
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.keys[i-1]
		}
		if i < len(n.keys) {
			chi = &n.keys[i]
		}
		cMin, cItems, cHeight, cErr := c.checkNode(child, h, clo, chi)
		if cErr != nil {
			return minKey, 0, 0, cErr
		}
		if i == 0 {
			minKey = cMin
			childHeight = cHeight
		} else {
			if cHeight != childHeight {
				return minKey, 0, 0, errors.Wrapf(ErrCorrupted, "inner node %d: non-uniform subtree heights", h)
			}
			if t.cfg.Compare(cMin, n.keys[i-1]) != 0 {
				return minKey, 0, 0, errors.Wrapf(ErrCorrupted,
					"inner node %d: separator #%d is not the minimum of its right subtree", h, i-1)
			}
		}
		items += cItems
	}
	return minKey, items, childHeight + 1, nil
}

func (c *checker[K, V]) checkLeaf(h arena.Handle, n *node[K, V], isRoot bool, lo, hi *K) error {
	t := c.t
	if len(n.keys) != len(n.vals) {
		return errors.Wrapf(ErrCorrupted, "leaf %d: %d keys for %d values", h, len(n.keys), len(n.vals))
	}
	if len(n.children) != 0 {
		return errors.Wrapf(ErrCorrupted, "leaf %d has children", h)
	}
	lower := t.minLeafEntries()
	if isRoot {
		lower = 1
	}
	if len(n.keys) < lower || len(n.keys) > t.maxLeafEntries() {
		return errors.Wrapf(ErrCorrupted, "leaf %d: entry count %d outside [%d, %d]",
			h, len(n.keys), lower, t.maxLeafEntries())
	}
	return c.checkSorted(h, n.keys, lo, hi)
}

// checkSorted asserts keys to be strictly ascending and within [lo, hi).
func (c *checker[K, V]) checkSorted(h arena.Handle, keys []K, lo, hi *K) error {
	cmp := c.t.cfg.Compare
	for i, k := range keys {
		if i > 0 && cmp(keys[i-1], k) >= 0 {
			return errors.Wrapf(ErrCorrupted, "node %d: keys not strictly ascending at #%d", h, i)
		}
		if lo != nil && cmp(k, *lo) < 0 {
			return errors.Wrapf(ErrCorrupted, "node %d: key #%d below separator", h, i)
		}
		if hi != nil && cmp(k, *hi) >= 0 {
			return errors.Wrapf(ErrCorrupted, "node %d: key #%d not below separator", h, i)
		}
	}
	return nil
}

// checkLeafChain compares the next-links with the in-order sequence of
// leaves collected during the descent.
func (c *checker[K, V]) checkLeafChain() error {
	t := c.t
	if t.first != c.leaves[0] {
		return errors.Wrapf(ErrCorrupted, "first leaf is %d, expected %d", t.first, c.leaves[0])
	}
	if t.last != c.leaves[len(c.leaves)-1] {
		return errors.Wrapf(ErrCorrupted, "last leaf is %d, expected %d", t.last, c.leaves[len(c.leaves)-1])
	}
	for i, h := range c.leaves {
		next := t.node(h).next
		want := arena.Nil
		if i+1 < len(c.leaves) {
			want = c.leaves[i+1]
		}
		if next != want {
			return errors.Wrapf(ErrCorrupted, "leaf %d: next link %d, expected %d", h, next, want)
		}
	}
	return nil
}
