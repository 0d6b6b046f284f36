package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/bptree"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type dumpOptions struct {
	*rootOptions
	count int
	bulk  bool
	dot   bool
	color bool
	stats bool
}

func newDumpCmd(root *rootOptions) *cobra.Command {
	opts := &dumpOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "dump [key ...]",
		Short: "Build a tree from integer keys and print its structure",
		Long: `dump inserts the given integer keys, in the given order, into an empty
tree and prints the resulting structure. Without keys, 1..--count are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseKeyArgs(args, opts.count)
			if err != nil {
				return err
			}
			return runDump(cmd.OutOrStdout(), keys, opts)
		},
	}
	cmd.Flags().IntVar(&opts.count, "count", 20, "number of keys to use if none are given")
	cmd.Flags().BoolVar(&opts.bulk, "bulk", false, "bulk-build from the sorted keys instead of inserting")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "output Graphviz DOT instead of text")
	cmd.Flags().BoolVar(&opts.color, "color", term.IsTerminal(int(os.Stdout.Fd())), "colorize text output")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print tree statistics")
	return cmd
}

func parseKeyArgs(args []string, count int) ([]int, error) {
	if len(args) == 0 {
		keys := make([]int, count)
		for i := range keys {
			keys[i] = i + 1
		}
		return keys, nil
	}
	keys := make([]int, len(args))
	for i, a := range args {
		k, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Wrapf(err, "key #%d", i)
		}
		keys[i] = k
	}
	return keys, nil
}

func buildTree(keys []int, order int, bulk bool) (*bptree.Tree[int, int], error) {
	if !bulk {
		tree, err := bptree.New[int, int](bptree.OrderedConfig[int](order))
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			tree.Insert(k, k)
		}
		return tree, nil
	}
	sorted := slices.Compact(slices.Sorted(slices.Values(keys)))
	return bptree.BulkBuild[int, int](bptree.OrderedConfig[int](order), func(yield func(int, int) bool) {
		for _, k := range sorted {
			if !yield(k, k) {
				return
			}
		}
	})
}

func runDump(w io.Writer, keys []int, opts *dumpOptions) error {
	tree, err := buildTree(keys, opts.order, opts.bulk)
	if err != nil {
		return err
	}
	tracer().Infof("built tree of %d entries", tree.Len())
	if opts.dot {
		if err := tree.ToDot(w); err != nil {
			return err
		}
	} else if err := tree.Dump(w, opts.color); err != nil {
		return err
	}
	if opts.stats {
		renderStats(w, tree.Stats())
	}
	return tree.Check()
}

func renderStats(w io.Writer, st bptree.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Statistic", "Value"})
	table.AppendBulk([][]string{
		{"entries", strconv.Itoa(st.Len)},
		{"height", strconv.Itoa(st.Height)},
		{"leaves", strconv.Itoa(st.Leaves)},
		{"inner nodes", strconv.Itoa(st.Inner)},
		{"fill factor", fmt.Sprintf("%.2f", st.FillFactor)},
		{"arena slots", strconv.Itoa(st.ArenaSlots)},
		{"arena tombstones", strconv.Itoa(st.ArenaTombstones)},
	})
	table.Render()
}
