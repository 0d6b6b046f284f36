package bptree

import (
	"slices"

	"github.com/npillmayer/bptree/arena"
)

// evenUp redistributes entries (leaves) or children (inner nodes) between the
// siblings at slot and slot+1 of parent ph, until their sizes differ by at
// most one. The separator between them is rewritten.
func (t *Tree[K, V]) evenUp(ph arena.Handle, slot int) {
	p := t.node(ph)
	if t.node(p.children[slot]).leaf {
		t.evenUpLeaves(p, slot)
	} else {
		t.evenUpInner(p, slot)
	}
}

func (t *Tree[K, V]) evenUpLeaves(p *node[K, V], slot int) {
	l, r := t.node(p.children[slot]), t.node(p.children[slot+1])
	want := (len(l.keys) + len(r.keys) + 1) / 2
	switch {
	case len(l.keys) > want: // shift the tail of l to the front of r
		r.keys = slices.Insert(r.keys, 0, l.keys[want:]...)
		r.vals = slices.Insert(r.vals, 0, l.vals[want:]...)
		l.keys = truncate(l.keys, want)
		l.vals = truncate(l.vals, want)
	case len(l.keys) < want: // shift the head of r to the end of l
		k := want - len(l.keys)
		l.keys = append(l.keys, r.keys[:k]...)
		l.vals = append(l.vals, r.vals[:k]...)
		r.keys = slices.Delete(r.keys, 0, k)
		r.vals = slices.Delete(r.vals, 0, k)
	}
	assert(len(r.keys) > 0, "evenUpLeaves left right sibling empty")
	p.keys[slot] = r.keys[0]
}

// evenUpInner rotates children through the parent: the sequence of children
// of both siblings, interleaved with their keys and the parent separator, is
// cut anew.
func (t *Tree[K, V]) evenUpInner(p *node[K, V], slot int) {
	lh, rh := p.children[slot], p.children[slot+1]
	l, r := t.node(lh), t.node(rh)
	sep := p.keys[slot]
	want := (len(l.children) + len(r.children) + 1) / 2
	switch {
	case len(l.children) > want:
		k := len(l.children) - want
		newSep := l.keys[want-1]
		moved := append(slices.Clone(l.keys[want:]), sep)
		r.keys = slices.Insert(r.keys, 0, moved...)
		r.children = slices.Insert(r.children, 0, l.children[want:]...)
		l.children = truncate(l.children, want)
		l.keys = truncate(l.keys, want-1)
		p.keys[slot] = newSep
		t.adopt(rh, r.children[:k])
	case len(l.children) < want:
		k := want - len(l.children)
		newSep := r.keys[k-1]
		l.keys = append(l.keys, sep)
		l.keys = append(l.keys, r.keys[:k-1]...)
		l.children = append(l.children, r.children[:k]...)
		r.keys = slices.Delete(r.keys, 0, k)
		r.children = slices.Delete(r.children, 0, k)
		p.keys[slot] = newSep
		t.adopt(lh, l.children[len(l.children)-k:])
	}
}

// merge folds the sibling at slot+1 of parent ph into the sibling at slot and
// drops the separator between them.
func (t *Tree[K, V]) merge(ph arena.Handle, slot int) {
	p := t.node(ph)
	lh, rh := p.children[slot], p.children[slot+1]
	l, r := t.node(lh), t.node(rh)
	if l.leaf {
		l.keys = append(l.keys, r.keys...)
		l.vals = append(l.vals, r.vals...)
		l.next = r.next
		if t.last == rh {
			t.last = lh
		}
	} else {
		l.keys = append(l.keys, p.keys[slot])
		l.keys = append(l.keys, r.keys...)
		l.children = append(l.children, r.children...)
		t.adopt(lh, r.children)
	}
	p.keys = slices.Delete(p.keys, slot, slot+1)
	p.children = slices.Delete(p.children, slot+1, slot+2)
	t.nodes.Free(rh)
	tracer().Debugf("bptree: merged node %d into %d", rh, lh)
}
