package workload

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for name, want := range map[string]Type{
		"oltp": OLTP, "OLAP": OLAP, "Reporting": Reporting, "churn": Churn,
	} {
		got, err := ParseType(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseType("batch")
	if !errors.Is(err, ErrUnknownWorkload) {
		t.Fatalf("expected ErrUnknownWorkload, got %v", err)
	}
}

// Both index implementations must behave identically under the same
// sequence of operations.
func TestIndexesAgree(t *testing.T) {
	bp, err := NewBPTree(5)
	require.NoError(t, err)
	ref := NewGoogleBTree(4)
	for _, w := range Types {
		sb := Execute(bp, w, 3000, 800, rand.New(rand.NewPCG(1, 2)))
		sr := Execute(ref, w, 3000, 800, rand.New(rand.NewPCG(1, 2)))
		require.Equal(t, sr, sb, "workload %s", w)
		require.Equal(t, ref.Len(), bp.Len())
		require.NoError(t, bp.Tree().Check())
	}
	var keysBP, keysRef []int64
	bp.Range(100, 300, func(k int64, _ []byte) bool { keysBP = append(keysBP, k); return true })
	ref.Range(100, 300, func(k int64, _ []byte) bool { keysRef = append(keysRef, k); return true })
	require.Equal(t, keysRef, keysBP)
}

func TestNewBPTreeRejectsBadOrder(t *testing.T) {
	_, err := NewBPTree(2)
	require.Error(t, err)
}

func TestRunnerPublishesResults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bptree.workload")
	defer teardown()
	//
	ctx := context.Background()
	runner := NewRunner(ctx, 2000, 7)
	var mu sync.Mutex
	var received []Result
	done, ok := runner.Subscribe(ctx, func(res Result) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, res)
	})
	require.True(t, ok)
	bp, err := NewBPTree(16)
	require.NoError(t, err)
	results := runner.Run(bp, "bptree", "16")
	runner.Close()
	<-done
	//
	require.Len(t, results, len(Types)+1)
	require.Equal(t, "Load", results[0].Operation)
	require.Equal(t, 2000, results[0].Ops)
	require.Equal(t, 2000, results[0].Len)
	require.Equal(t, Reporting, Type(results[3].Operation))
	require.Equal(t, 2000/ScanWidth, results[3].Ops)
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, received)
	require.LessOrEqual(t, len(received), len(results))
	for i, res := range received {
		require.Equal(t, results[i], res)
	}
	require.NoError(t, bp.Tree().Check())
}
