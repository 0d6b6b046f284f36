package bptree

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

const (
	// DefaultOrder is the fan-out used when Config.Order is left zero.
	DefaultOrder = 32
	// MinOrder is the smallest admissible fan-out.
	MinOrder = 3
)

// Config configures a B+ tree.
type Config[K any] struct {
	// Order is the maximum fan-out M. Leaves hold at most M-1 entries, inner
	// nodes at most M children. Zero selects DefaultOrder.
	Order int
	// Compare defines the total order on keys: negative if a < b, zero if
	// a == b, positive if a > b.
	Compare func(a, b K) int
}

// OrderedConfig returns a configuration for naturally ordered keys.
func OrderedConfig[K cmp.Ordered](order int) Config[K] {
	return Config[K]{
		Order:   order,
		Compare: cmp.Compare[K],
	}
}

func (cfg Config[K]) normalized() Config[K] {
	if cfg.Order == 0 {
		cfg.Order = DefaultOrder
	}
	return cfg
}

func (cfg Config[K]) validate() error {
	cfg = cfg.normalized()
	if cfg.Order < MinOrder {
		return errors.Wrapf(ErrInvalidConfig, "order must be >= %d, is %d", MinOrder, cfg.Order)
	}
	if cfg.Compare == nil {
		return errors.Wrap(ErrInvalidConfig, "compare function is required")
	}
	return nil
}

// Occupancy bounds derived from the order.

func (t *Tree[K, V]) maxLeafEntries() int {
	return t.cfg.Order - 1
}

func (t *Tree[K, V]) minLeafEntries() int {
	return t.cfg.Order / 2
}

func (t *Tree[K, V]) maxChildren() int {
	return t.cfg.Order
}

func (t *Tree[K, V]) minChildren() int {
	return (t.cfg.Order + 1) / 2
}
