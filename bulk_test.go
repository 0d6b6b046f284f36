package bptree

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBulkPushThenPopInReverse(t *testing.T) {
	for _, order := range testOrders {
		tree := NewOrdered[int, int](order)
		for i := 0; i < 1000; i += 5 {
			tree.BulkPushBack(func(yield func(int, int) bool) {
				for k := i; k < i+5; k++ {
					if !yield(k, k*2) {
						return
					}
				}
			})
			require.Equal(t, i+5, tree.Len())
			if err := tree.Check(); err != nil {
				t.Fatalf("order %d: bulk push-back up to %d: %v", order, i+4, err)
			}
		}
		require.Equal(t, 1000, tree.Len())
		for i := 999; i >= 0; i -= 5 {
			popped := tree.BulkPopLast(5)
			require.Len(t, popped, 5)
			for j, e := range popped {
				require.Equal(t, i-j, e.Key)
				require.Equal(t, (i-j)*2, e.Value)
			}
			require.Equal(t, i-4, tree.Len())
			if err := tree.Check(); err != nil {
				t.Fatalf("order %d: bulk pop below %d: %v", order, i, err)
			}
		}
		require.True(t, tree.IsEmpty())
	}
}

func TestPushFront(t *testing.T) {
	tree := NewOrdered[int, string](3)
	for i := 100; i > 0; i-- {
		tree.PushFront(i, "x")
		if err := tree.Check(); err != nil {
			t.Fatalf("push-front %d: %v", i, err)
		}
	}
	k, _ := tree.MinKey()
	require.Equal(t, 1, k)
	require.Panics(t, func() { tree.PushFront(50, "y") })
	require.Panics(t, func() { tree.PushBack(100, "y") })
}

func TestBulkPushFrontAndBack(t *testing.T) {
	tree := NewOrdered[int, int](4)
	tree.Insert(50, 50)
	tree.BulkPushBack(maps.All(map[int]int{})) // empty sequence
	tree.BulkPushBack(func(yield func(int, int) bool) {
		for i := 51; i < 80; i++ {
			if !yield(i, i) {
				return
			}
		}
	})
	tree.BulkPushFront(func(yield func(int, int) bool) {
		for i := 10; i < 50; i++ {
			if !yield(i, i) {
				return
			}
		}
	})
	require.NoError(t, tree.Check())
	require.Equal(t, 70, tree.Len())
	keys := slices.Collect(tree.Keys())
	require.True(t, slices.IsSorted(keys))
	require.Equal(t, 10, keys[0])
	require.Equal(t, 79, keys[len(keys)-1])
}

func TestBulkPopFirst(t *testing.T) {
	tree := buildScenario(t, 3)
	popped := tree.BulkPopFirst(4)
	require.Equal(t, []Entry[int, int]{{3, 30}, {24, 240}, {28, 280}, {30, 300}}, popped)
	require.NoError(t, tree.Check())
	require.Len(t, tree.BulkPopFirst(100), 6)
	require.True(t, tree.IsEmpty())
	require.Empty(t, tree.BulkPopLast(3))
}

func TestSplitOff(t *testing.T) {
	for _, order := range []int{3, 4, 7} {
		for _, at := range []int{0, 1, 17, 99, 100} {
			tree := NewOrdered[int, int](order)
			for i := range 100 {
				tree.Insert(i, i)
			}
			other := tree.SplitOff(at)
			require.Equal(t, at, tree.Len())
			require.Equal(t, 100-at, other.Len())
			require.NoError(t, tree.Check())
			require.NoError(t, other.Check())
			if at > 0 {
				mx, _ := tree.MaxKey()
				require.Equal(t, at-1, mx)
			}
			if at < 100 {
				mn, _ := other.MinKey()
				require.Equal(t, at, mn)
			}
			require.Equal(t, order, other.Config().Order)
		}
	}
	tree := buildScenario(t, 3)
	require.Panics(t, func() { tree.SplitOff(11) })
	require.Panics(t, func() { tree.SplitOff(-1) })
}

func ascending(n int) func(yield func(int, int) bool) {
	return func(yield func(int, int) bool) {
		for i := range n {
			if !yield(i*3, i) {
				return
			}
		}
	}
}

func TestBulkBuild(t *testing.T) {
	for _, order := range testOrders {
		for _, n := range []int{0, 1, 2, 3, 5, 8, 13, 64, 100, 257, 1000} {
			tree, err := BulkBuild[int, int](OrderedConfig[int](order), ascending(n))
			if err != nil {
				t.Fatalf("order %d, n=%d: unexpected error: %v", order, n, err)
			}
			if err := tree.Check(); err != nil {
				t.Fatalf("order %d, n=%d: %v", order, n, err)
			}
			require.Equal(t, n, tree.Len())
			i := 0
			for k, v := range tree.All() {
				require.Equal(t, i*3, k)
				require.Equal(t, i, v)
				i++
			}
			require.Equal(t, n, i)
			// the built tree keeps working under mutation
			tree.Insert(1, -1)
			tree.Remove(0)
			if err := tree.Check(); err != nil {
				t.Fatalf("order %d, n=%d, after mutation: %v", order, n, err)
			}
		}
	}
}

func TestBulkBuildRejectsUnsortedInput(t *testing.T) {
	seq := func(yield func(int, string) bool) {
		for _, k := range []int{1, 2, 2, 3} {
			if !yield(k, "v") {
				return
			}
		}
	}
	_, err := BulkBuild[int, string](OrderedConfig[int](4), seq)
	if !errors.Is(err, ErrUnsortedInput) {
		t.Fatalf("expected ErrUnsortedInput, got %v", err)
	}
	_, err = BulkBuild[int, string](OrderedConfig[int](1), seq)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGroupSizes(t *testing.T) {
	for lo := 1; lo < 8; lo++ {
		for hi := 2*lo - 1; hi < 2*lo+3; hi++ {
			if hi < 2 {
				continue
			}
			for n := lo; n < 200; n++ {
				sizes := groupSizes(n, lo, hi)
				sum := 0
				for _, sz := range sizes {
					if len(sizes) > 1 && (sz < lo || sz > hi) {
						t.Fatalf("groupSizes(%d, %d, %d) = %v out of bounds", n, lo, hi, sizes)
					}
					sum += sz
				}
				if sum != n {
					t.Fatalf("groupSizes(%d, %d, %d) = %v does not sum up", n, lo, hi, sizes)
				}
			}
		}
	}
}
