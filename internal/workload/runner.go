package workload

import (
	"context"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/guiguan/caster"
)

// Result is the measurement of one phase of a run.
type Result struct {
	Name        string // index under test
	Config      string // its configuration, e.g. the order
	Operation   string // phase
	Ops         int
	LatencyNs   int64 // per operation
	AllocBytes  uint64
	HeapObjects uint64
	Len         int // entries in the index after the phase
}

// MemoryStats is a snapshot of heap usage after a forced collection.
type MemoryStats struct {
	AllocBytes  uint64
	HeapObjects uint64
}

// ReadMemory forces a garbage collection and reads live heap statistics.
func ReadMemory() MemoryStats {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocBytes:  m.Alloc,
		HeapObjects: m.HeapObjects,
	}
}

// Runner executes workload suites and broadcasts every phase result to its
// subscribers.
type Runner struct {
	Ops       int    // operations per phase
	Seed      uint64 // seed of the key generator
	Workloads []Type // phases to run after the initial load
	cast      *caster.Caster
}

// NewRunner creates a runner executing ops operations per phase. The runner
// stops broadcasting when ctx is done.
func NewRunner(ctx context.Context, ops int, seed uint64) *Runner {
	return &Runner{
		Ops:       ops,
		Seed:      seed,
		Workloads: Types,
		cast:      caster.New(ctx),
	}
}

// Subscribe registers fn to be called for every published result. fn is
// called from a separate goroutine. The returned channel is closed after the
// runner has been closed and fn has seen every result.
func (r *Runner) Subscribe(ctx context.Context, fn func(Result)) (<-chan struct{}, bool) {
	ch, ok := r.cast.Sub(ctx, 16)
	if !ok {
		return nil, false
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range ch {
			if res, ok := msg.(Result); ok {
				fn(res)
			}
		}
	}()
	return done, true
}

// Close ends broadcasting and closes all subscriptions.
func (r *Runner) Close() {
	r.cast.Close()
}

// Run loads idx with Ops sequential keys and then executes each workload
// phase. Results are returned and published to subscribers.
func (r *Runner) Run(idx Index, name, config string) []Result {
	rnd := rand.New(rand.NewPCG(r.Seed, uint64(r.Ops)))
	results := make([]Result, 0, len(r.Workloads)+1)
	keyspace := int64(r.Ops)
	//
	start := time.Now()
	for k := range keyspace {
		idx.Insert(k, payload)
	}
	results = append(results, r.publish(idx, name, config, "Load", r.Ops, time.Since(start)))
	for _, w := range r.Workloads {
		ops := r.Ops / 2
		if w == Reporting {
			ops = max(r.Ops/ScanWidth, 1)
		}
		start = time.Now()
		st := Execute(idx, w, ops, keyspace, rnd)
		tracer().Debugf("workload %s on %s/%s: %+v", w, name, config, st)
		results = append(results, r.publish(idx, name, config, string(w), ops, time.Since(start)))
	}
	return results
}

func (r *Runner) publish(idx Index, name, config, op string, ops int, elapsed time.Duration) Result {
	mem := ReadMemory()
	res := Result{
		Name:        name,
		Config:      config,
		Operation:   op,
		Ops:         ops,
		AllocBytes:  mem.AllocBytes,
		HeapObjects: mem.HeapObjects,
		Len:         idx.Len(),
	}
	if ops > 0 {
		res.LatencyNs = elapsed.Nanoseconds() / int64(ops)
	}
	tracer().Infof("%s/%s %s: %d ns/op, %d heap objects", name, config, op, res.LatencyNs, res.HeapObjects)
	r.cast.Pub(res)
	return res
}
