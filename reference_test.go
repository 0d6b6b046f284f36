package bptree

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/btree"
	"github.com/kr/pretty"
)

// refEntry adapts a key/value pair to google/btree, which serves as the
// reference ordered map.
type refEntry struct {
	key, val int
}

func (e refEntry) Less(than btree.Item) bool {
	return e.key < than.(refEntry).key
}

func referenceEntries(ref *btree.BTree) []Entry[int, int] {
	entries := make([]Entry[int, int], 0, ref.Len())
	ref.Ascend(func(item btree.Item) bool {
		e := item.(refEntry)
		entries = append(entries, Entry[int, int]{Key: e.key, Value: e.val})
		return true
	})
	return entries
}

func treeEntries(tree *Tree[int, int]) []Entry[int, int] {
	entries := make([]Entry[int, int], 0, tree.Len())
	for k, v := range tree.All() {
		entries = append(entries, Entry[int, int]{Key: k, Value: v})
	}
	return entries
}

func requireSameEntries(t *testing.T, tree *Tree[int, int], ref *btree.BTree) {
	t.Helper()
	if diff := pretty.Diff(referenceEntries(ref), treeEntries(tree)); len(diff) > 0 {
		t.Fatalf("tree diverges from reference:\n%v", diff)
	}
}

var testOrders = []int{3, 4, 5, 10, 21, 100}

func TestRandomizedAgainstReference(t *testing.T) {
	for _, order := range testOrders {
		t.Run(fmt.Sprintf("order=%d", order), func(t *testing.T) {
			rnd := rand.New(rand.NewPCG(uint64(order), 42))
			tree := NewOrdered[int, int](order)
			ref := btree.New(4)
			for step := range 4000 {
				k := rnd.IntN(600)
				switch op := rnd.IntN(10); {
				case op < 6:
					old, replaced := tree.Insert(k, step)
					prev := ref.ReplaceOrInsert(refEntry{key: k, val: step})
					if replaced != (prev != nil) {
						t.Fatalf("step %d: insert(%d) replaced=%v, reference disagrees", step, k, replaced)
					}
					if prev != nil && prev.(refEntry).val != old {
						t.Fatalf("step %d: insert(%d) returned old value %d, expected %d", step, k, old, prev.(refEntry).val)
					}
				default:
					v, ok := tree.Remove(k)
					prev := ref.Delete(refEntry{key: k})
					if ok != (prev != nil) {
						t.Fatalf("step %d: remove(%d) found=%v, reference disagrees", step, k, ok)
					}
					if prev != nil && prev.(refEntry).val != v {
						t.Fatalf("step %d: remove(%d) returned %d, expected %d", step, k, v, prev.(refEntry).val)
					}
				}
				if tree.Len() != ref.Len() {
					t.Fatalf("step %d: len %d, reference has %d", step, tree.Len(), ref.Len())
				}
				if step%50 == 0 {
					if err := tree.Check(); err != nil {
						t.Fatalf("step %d: %v", step, err)
					}
					requireSameEntries(t, tree, ref)
				}
			}
			if err := tree.Check(); err != nil {
				t.Fatalf("%v", err)
			}
			requireSameEntries(t, tree, ref)
			for k := range 600 {
				v, ok := tree.Get(k)
				item := ref.Get(refEntry{key: k})
				if ok != (item != nil) || (ok && item.(refEntry).val != v) {
					t.Fatalf("get(%d) = (%d, %v), reference disagrees", k, v, ok)
				}
			}
		})
	}
}

func TestPopLastAgainstReference(t *testing.T) {
	for _, order := range testOrders {
		rnd := rand.New(rand.NewPCG(7, uint64(order)))
		tree := NewOrdered[int, int](order)
		ref := btree.New(4)
		for range 1500 {
			k := rnd.IntN(1000)
			if rnd.IntN(10) < 3 {
				tree.Remove(k)
				ref.Delete(refEntry{key: k})
				continue
			}
			tree.Insert(k, -k)
			ref.ReplaceOrInsert(refEntry{key: k, val: -k})
		}
		requireSameEntries(t, tree, ref)
		for i := 0; ref.Len() > 0; i++ {
			k, v, ok := tree.PopLast()
			want := ref.DeleteMax().(refEntry)
			if !ok || k != want.key || v != want.val {
				t.Fatalf("order %d: pop-last #%d = (%d, %d, %v), expected %d", order, i, k, v, ok, want.key)
			}
			if err := tree.Check(); err != nil {
				t.Fatalf("order %d: pop-last #%d: %v", order, i, err)
			}
		}
		if !tree.IsEmpty() {
			t.Fatalf("order %d: tree not empty after popping every entry", order)
		}
	}
}

func TestPopFirstAgainstReference(t *testing.T) {
	for _, order := range testOrders {
		rnd := rand.New(rand.NewPCG(11, uint64(order)))
		tree := NewOrdered[int, int](order)
		ref := btree.New(4)
		for range 700 {
			k := rnd.IntN(5000)
			tree.Insert(k, k)
			ref.ReplaceOrInsert(refEntry{key: k, val: k})
		}
		for i := 0; ref.Len() > 0; i++ {
			k, _, ok := tree.PopFirst()
			want := ref.DeleteMin().(refEntry)
			if !ok || k != want.key {
				t.Fatalf("order %d: pop-first #%d = (%d, %v), expected %d", order, i, k, ok, want.key)
			}
			if i%7 == 0 {
				if err := tree.Check(); err != nil {
					t.Fatalf("order %d: pop-first #%d: %v", order, i, err)
				}
			}
		}
	}
}

func TestSelectAgainstReference(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 3))
	tree := NewOrdered[int, int](5)
	ref := btree.New(4)
	for range 500 {
		k := rnd.IntN(1000)
		tree.Insert(k, k)
		ref.ReplaceOrInsert(refEntry{key: k, val: k})
	}
	for range 200 {
		lo, hi := rnd.IntN(1100)-50, rnd.IntN(1100)-50
		var want []int
		ref.AscendRange(refEntry{key: lo}, refEntry{key: hi}, func(item btree.Item) bool {
			want = append(want, item.(refEntry).key)
			return true
		})
		got := collectKeys(tree.Select(Between(lo, hi)))
		if diff := pretty.Diff(want, got); len(diff) > 0 {
			t.Fatalf("select [%d, %d) diverges: %v", lo, hi, diff)
		}
	}
}
