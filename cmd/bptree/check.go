package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/bptree/internal/workload"
	"github.com/spf13/cobra"
)

// errDiverged is returned when the tree disagrees with the reference.
var errDiverged = errors.New("bptree diverges from reference")

type checkOptions struct {
	*rootOptions
	ops      int
	keyspace int64
	seed     uint64
	every    int
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Cross-check the tree against google/btree with random operations",
		Long: `check applies the same random inserts, removes and pops to the B+ tree and
to google/btree, validates the tree invariants every --every operations and
compares the full contents of both. It fails on the first divergence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.ops, "ops", 100000, "number of random operations")
	cmd.Flags().Int64Var(&opts.keyspace, "keyspace", 5000, "keys are drawn from [0, keyspace)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "seed of the operation generator")
	cmd.Flags().IntVar(&opts.every, "every", 1000, "operations between full checks")
	return cmd
}

func runCheck(w io.Writer, opts *checkOptions) error {
	bp, err := workload.NewBPTree(opts.order)
	if err != nil {
		return err
	}
	ref := workload.NewGoogleBTree(4)
	rnd := rand.New(rand.NewPCG(opts.seed, opts.seed))
	every := max(opts.every, 1)
	for step := 1; step <= opts.ops; step++ {
		// one operation per step, the same on both sides
		wl := workload.Types[rnd.IntN(len(workload.Types))]
		seed := rnd.Uint64()
		sb := workload.Execute(bp, wl, 1, opts.keyspace, rand.New(rand.NewPCG(seed, 0)))
		sr := workload.Execute(ref, wl, 1, opts.keyspace, rand.New(rand.NewPCG(seed, 0)))
		if sb != sr {
			return errors.Wrapf(errDiverged, "step %d (%s): %+v != %+v", step, wl, sb, sr)
		}
		if step%every == 0 || step == opts.ops {
			if err := bp.Tree().Check(); err != nil {
				return errors.Wrapf(err, "step %d", step)
			}
			if err := compareContents(bp, ref); err != nil {
				return errors.Wrapf(err, "step %d", step)
			}
			tracer().Debugf("step %d: len=%d height=%d", step, bp.Len(), bp.Tree().Height())
		}
	}
	fmt.Fprintf(w, "ok: %d operations, len=%d, height=%d\n", opts.ops, bp.Len(), bp.Tree().Height())
	return nil
}

func compareContents(bp *workload.BPTree, ref *workload.GoogleBTree) error {
	if bp.Len() != ref.Len() {
		return errors.Wrapf(errDiverged, "len %d != %d", bp.Len(), ref.Len())
	}
	var want []int64
	ref.Range(0, 1<<62, func(k int64, _ []byte) bool {
		want = append(want, k)
		return true
	})
	i := 0
	var err error
	bp.Range(0, 1<<62, func(k int64, _ []byte) bool {
		if i >= len(want) || want[i] != k {
			err = errors.Wrapf(errDiverged, "entry #%d is %d", i, k)
			return false
		}
		i++
		return true
	})
	return err
}
