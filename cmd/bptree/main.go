/*
Command bptree exercises the B+ tree of module github.com/npillmayer/bptree
from the command line.

	bptree bench   run database workloads against the tree and google/btree
	bptree dump    build a tree from keys and print its structure
	bptree check   randomized differential run against google/btree

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
