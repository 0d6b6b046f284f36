package workload

import (
	"github.com/google/btree"
	"github.com/npillmayer/bptree"
)

// Index is the subset of ordered-map operations the workloads exercise.
type Index interface {
	Insert(key int64, value []byte)
	Get(key int64) ([]byte, bool)
	Delete(key int64) bool
	DeleteMin() bool
	// Range calls fn for keys in [start, end) in ascending order until fn
	// returns false.
	Range(start, end int64, fn func(key int64, value []byte) bool)
	Len() int
}

// --- B+ tree ---------------------------------------------------------------

// BPTree adapts a bptree.Tree to Index.
type BPTree struct {
	tree *bptree.Tree[int64, []byte]
}

var _ Index = (*BPTree)(nil)

// NewBPTree creates an empty B+ tree index of the given order.
func NewBPTree(order int) (*BPTree, error) {
	t, err := bptree.New[int64, []byte](bptree.OrderedConfig[int64](order))
	if err != nil {
		return nil, err
	}
	return &BPTree{tree: t}, nil
}

// Tree exposes the underlying tree.
func (ix *BPTree) Tree() *bptree.Tree[int64, []byte] {
	return ix.tree
}

func (ix *BPTree) Insert(key int64, value []byte) {
	ix.tree.Insert(key, value)
}

func (ix *BPTree) Get(key int64) ([]byte, bool) {
	return ix.tree.Get(key)
}

func (ix *BPTree) Delete(key int64) bool {
	_, ok := ix.tree.Remove(key)
	return ok
}

func (ix *BPTree) DeleteMin() bool {
	_, _, ok := ix.tree.PopFirst()
	return ok
}

func (ix *BPTree) Range(start, end int64, fn func(int64, []byte) bool) {
	for k, v := range ix.tree.Select(bptree.Between(start, end)) {
		if !fn(k, v) {
			return
		}
	}
}

func (ix *BPTree) Len() int {
	return ix.tree.Len()
}

// --- google/btree ----------------------------------------------------------

type item struct {
	key   int64
	value []byte
}

func (it item) Less(than btree.Item) bool {
	return it.key < than.(item).key
}

// GoogleBTree adapts github.com/google/btree to Index.
type GoogleBTree struct {
	tree *btree.BTree
}

var _ Index = (*GoogleBTree)(nil)

// NewGoogleBTree creates an empty google/btree index of the given degree.
func NewGoogleBTree(degree int) *GoogleBTree {
	return &GoogleBTree{tree: btree.New(degree)}
}

func (ix *GoogleBTree) Insert(key int64, value []byte) {
	ix.tree.ReplaceOrInsert(item{key: key, value: value})
}

func (ix *GoogleBTree) Get(key int64) ([]byte, bool) {
	if found := ix.tree.Get(item{key: key}); found != nil {
		return found.(item).value, true
	}
	return nil, false
}

func (ix *GoogleBTree) Delete(key int64) bool {
	return ix.tree.Delete(item{key: key}) != nil
}

func (ix *GoogleBTree) DeleteMin() bool {
	return ix.tree.DeleteMin() != nil
}

func (ix *GoogleBTree) Range(start, end int64, fn func(int64, []byte) bool) {
	ix.tree.AscendRange(item{key: start}, item{key: end}, func(i btree.Item) bool {
		it := i.(item)
		return fn(it.key, it.value)
	})
}

func (ix *GoogleBTree) Len() int {
	return ix.tree.Len()
}
