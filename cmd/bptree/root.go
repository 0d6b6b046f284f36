package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/bptree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

// tracer writes to trace with key 'bptree.cmd'
func tracer() tracing.Trace {
	return tracing.Select("bptree.cmd")
}

type rootOptions struct {
	order int
	trace string
}

var traceLevels = map[string]tracing.TraceLevel{
	"error": tracing.LevelError,
	"info":  tracing.LevelInfo,
	"debug": tracing.LevelDebug,
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "bptree",
		Short: "Exercise an in-memory B+ tree",
		Long: `bptree drives the B+ tree ordered map with database workloads, prints
tree structures and cross-checks the tree against google/btree.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := traceLevels[strings.ToLower(opts.trace)]
			if !ok {
				return errors.Newf("unknown trace level %q", opts.trace)
			}
			gtrace.CoreTracer = gologadapter.New()
			gtrace.CoreTracer.SetTraceLevel(level)
			if opts.order < bptree.MinOrder {
				return errors.Wrapf(bptree.ErrInvalidConfig, "--order %d", opts.order)
			}
			return nil
		},
	}
	root.PersistentFlags().IntVar(&opts.order, "order", bptree.DefaultOrder, "fan-out M of the tree (> 2)")
	root.PersistentFlags().StringVar(&opts.trace, "trace", "error", "trace level: error, info or debug")
	root.AddCommand(newBenchCmd(opts), newDumpCmd(opts), newCheckCmd(opts))
	return root
}
