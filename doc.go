/*
Package bptree provides an in-memory ordered map backed by a B+ tree.

Keys are kept in leaves only; inner nodes carry separator keys for routing.
Every separator equals the smallest key of the leftmost leaf in the subtree to
its right. Leaves are chained in key order, so range scans walk the chain and
never climb back through the parents.

Nodes live in a slot arena (package arena) and refer to each other by handle.
An inner node owns its children. Parent links and leaf successor links are
navigation only.

Fan-out is configured by the order M (> 2):

	leaf entries         M/2 .. M-1   (root leaf: 1 .. M-1)
	inner children  ceil(M/2) .. M    (root: 2 .. M)

Overflow and underflow are first resolved by evening up with a sibling (left
sibling first), and only if no sibling can help by a split or a merge.

Status:
  - point lookup, insert/update, remove,
  - ordered range selection with included, excluded or open bounds,
  - rank/nth order statistics (linear in the number of leaves),
  - push/pop at both ends, bulk push/pop, split-off, bottom-up bulk build,
  - invariant checker, pretty-printer, Graphviz output.

A Tree is not safe for concurrent use. Iterators borrow the tree: do not
mutate a tree while an iterator obtained from it is still in use.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package bptree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bptree'
func tracer() tracing.Trace {
	return tracing.Select("bptree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
