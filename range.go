package bptree

type boundKind uint8

const (
	unbounded boundKind = iota
	included
	excluded
)

// Bound is one end of a key range.
type Bound[K any] struct {
	kind boundKind
	key  K
}

// Unbounded returns an open range end.
func Unbounded[K any]() Bound[K] {
	return Bound[K]{}
}

// Included returns a range end which admits key itself.
func Included[K any](key K) Bound[K] {
	return Bound[K]{kind: included, key: key}
}

// Excluded returns a range end which stops short of key.
func Excluded[K any](key K) Bound[K] {
	return Bound[K]{kind: excluded, key: key}
}

// IsUnbounded is true for an open range end.
func (b Bound[K]) IsUnbounded() bool {
	return b.kind == unbounded
}

// IsIncluded is true for a range end admitting its key.
func (b Bound[K]) IsIncluded() bool {
	return b.kind == included
}

// Key returns the key of a bounded range end.
func (b Bound[K]) Key() (K, bool) {
	return b.key, b.kind != unbounded
}

// Range is a key interval given by a lower and an upper bound.
type Range[K any] struct {
	Lo, Hi Bound[K]
}

// Full is the range of all keys.
func Full[K any]() Range[K] {
	return Range[K]{}
}

// Between is the half-open range [lo, hi).
func Between[K any](lo, hi K) Range[K] {
	return Range[K]{Lo: Included(lo), Hi: Excluded(hi)}
}

// Closed is the range [lo, hi].
func Closed[K any](lo, hi K) Range[K] {
	return Range[K]{Lo: Included(lo), Hi: Included(hi)}
}

// From is the range of keys >= lo.
func From[K any](lo K) Range[K] {
	return Range[K]{Lo: Included(lo), Hi: Unbounded[K]()}
}

// Until is the range of keys < hi.
func Until[K any](hi K) Range[K] {
	return Range[K]{Lo: Unbounded[K](), Hi: Excluded(hi)}
}

// belowHi reports whether key satisfies the upper bound hi.
func (t *Tree[K, V]) belowHi(key K, hi Bound[K]) bool {
	switch hi.kind {
	case included:
		return t.cfg.Compare(key, hi.key) <= 0
	case excluded:
		return t.cfg.Compare(key, hi.key) < 0
	}
	return true
}
