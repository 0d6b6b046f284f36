package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// twoLeaves bulk-builds a tree of order 4 with leaves [10 20 30] [40 50]
// below a root separator 40.
func twoLeaves(t *testing.T) *Tree[int, int] {
	t.Helper()
	tree, err := BulkBuild[int, int](OrderedConfig[int](4), func(yield func(int, int) bool) {
		for _, k := range []int{10, 20, 30, 40, 50} {
			if !yield(k, k) {
				return
			}
		}
	})
	require.NoError(t, err)
	requireLeaves(t, tree, []int{10, 20, 30}, []int{40, 50}, 40)
	return tree
}

func requireLeaves(t *testing.T, tree *Tree[int, int], left, right []int, sep int) {
	t.Helper()
	require.NoError(t, tree.Check())
	require.Equal(t, 2, tree.Height())
	require.Equal(t, 2, tree.Stats().Leaves)
	require.Equal(t, left, tree.node(tree.first).keys)
	require.Equal(t, right, tree.node(tree.last).keys)
	require.Equal(t, []int{sep}, tree.node(tree.root).keys)
}

func TestOverflowEvensUpWithLeftSibling(t *testing.T) {
	tree := twoLeaves(t)
	tree.Remove(20)
	tree.Insert(45, 45)
	requireLeaves(t, tree, []int{10, 30}, []int{40, 45, 50}, 40)
	tree.Insert(60, 60) // right leaf overflows, left leaf has room
	requireLeaves(t, tree, []int{10, 30, 40}, []int{45, 50, 60}, 45)
}

func TestOverflowEvensUpWithRightSibling(t *testing.T) {
	tree := twoLeaves(t)
	tree.Insert(15, 15) // leftmost leaf overflows, right leaf has room
	requireLeaves(t, tree, []int{10, 15, 20}, []int{30, 40, 50}, 30)
}

func TestOverflowSplitsWhenSiblingsAreFull(t *testing.T) {
	tree := twoLeaves(t)
	tree.Insert(45, 45)
	requireLeaves(t, tree, []int{10, 20, 30}, []int{40, 45, 50}, 40)
	tree.Insert(60, 60)
	require.NoError(t, tree.Check())
	require.Equal(t, 3, tree.Stats().Leaves)
}

func TestUnderflowBorrowsFromLeftSibling(t *testing.T) {
	tree := twoLeaves(t)
	tree.Remove(40) // right leaf drops to one entry, left leaf can lend
	requireLeaves(t, tree, []int{10, 20}, []int{30, 50}, 30)
}

func TestUnderflowBorrowsFromRightSibling(t *testing.T) {
	tree := twoLeaves(t)
	tree.Insert(45, 45)
	tree.Remove(30)
	requireLeaves(t, tree, []int{10, 20}, []int{40, 45, 50}, 40)
	tree.Remove(10) // leftmost leaf drops to one entry, right leaf can lend
	requireLeaves(t, tree, []int{20, 40}, []int{45, 50}, 45)
}

func TestUnderflowMergesWhenNoSiblingCanLend(t *testing.T) {
	tree := twoLeaves(t)
	tree.Remove(30)
	requireLeaves(t, tree, []int{10, 20}, []int{40, 50}, 40)
	tree.Remove(10)
	require.NoError(t, tree.Check())
	require.Equal(t, 1, tree.Height())
	require.Equal(t, 1, tree.Stats().Leaves)
	require.Equal(t, []int{20, 40, 50}, tree.node(tree.root).keys)
}
