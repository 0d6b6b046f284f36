package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/bptree/internal/workload"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type benchOptions struct {
	*rootOptions
	ops      int
	workload string
	seed     uint64
}

func newBenchCmd(root *rootOptions) *cobra.Command {
	opts := &benchOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run workloads against the B+ tree and google/btree",
		Long: `bench loads each index with --ops sequential keys and then runs the
OLTP, OLAP, Reporting and Churn workloads (or a single one, see --workload),
reporting latency per operation and heap usage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.ops, "ops", 100000, "operations per phase")
	cmd.Flags().StringVar(&opts.workload, "workload", "all", "oltp, olap, reporting, churn or all")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "seed of the key generator")
	return cmd
}

// runBench renders the result table to w and progress lines to progress.
func runBench(ctx context.Context, w, progress io.Writer, opts *benchOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	workloads := workload.Types
	if opts.workload != "all" {
		wl, err := workload.ParseType(opts.workload)
		if err != nil {
			return err
		}
		workloads = []workload.Type{wl}
	}
	bp, err := workload.NewBPTree(opts.order)
	if err != nil {
		return err
	}
	runner := workload.NewRunner(ctx, opts.ops, opts.seed)
	runner.Workloads = workloads
	done, ok := runner.Subscribe(ctx, func(res workload.Result) {
		fmt.Fprintf(progress, "%s/%s %s done\n", res.Name, res.Config, res.Operation)
	})
	if !ok {
		runner.Close()
		return ctx.Err()
	}
	config := strconv.Itoa(opts.order)
	results := runner.Run(bp, "bptree", config)
	results = append(results, runner.Run(workload.NewGoogleBTree(max(opts.order/2, 2)), "google/btree", config)...)
	runner.Close()
	<-done
	if err := bp.Tree().Check(); err != nil {
		return err
	}
	renderResults(w, results)
	st := bp.Tree().Stats()
	fmt.Fprintf(w, "bptree: height %d, %s leaves, fill factor %.2f\n",
		st.Height, humanize.Comma(int64(st.Leaves)), st.FillFactor)
	return nil
}

func renderResults(w io.Writer, results []workload.Result) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			table.SetColWidth(width / 8)
		}
	}
	table.SetHeader([]string{"Index", "Order", "Phase", "Ops", "ns/op", "Heap", "Objects", "Len"})
	for _, res := range results {
		table.Append([]string{
			res.Name,
			res.Config,
			res.Operation,
			humanize.Comma(int64(res.Ops)),
			humanize.Comma(res.LatencyNs),
			humanize.IBytes(res.AllocBytes),
			humanize.Comma(int64(res.HeapObjects)),
			humanize.Comma(int64(res.Len)),
		})
	}
	table.Render()
}
