package bptree

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/bptree/arena"
)

// ToDot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). Child edges are solid, leaf chain links dashed.
func (t *Tree[K, V]) ToDot(w io.Writer) error {
	var nodelist, edgelist strings.Builder
	if !t.IsEmpty() {
		t.eachNode(t.root, func(h arena.Handle, n *node[K, V]) {
			if n.leaf {
				fmt.Fprintf(&nodelist, "\t\"%d\" [label=\"%s\"%s];\n", h, keyLabel(n.keys), nodeDotStyles(true))
				if !n.next.IsNil() {
					fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\" [style=dashed,constraint=false];\n", h, n.next)
				}
				return
			}
			fmt.Fprintf(&nodelist, "\t\"%d\" [label=\"%s\"%s];\n", h, keyLabel(n.keys), nodeDotStyles(false))
			for _, c := range n.children {
				fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", h, c)
			}
		})
	}
	for _, s := range []string{
		"strict digraph {\n",
		"\tnode [fontname=Arial,fontsize=12];\n",
		nodelist.String(),
		edgelist.String(),
		"}\n",
	} {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

// eachNode visits the subtree at h in pre-order.
func (t *Tree[K, V]) eachNode(h arena.Handle, fn func(arena.Handle, *node[K, V])) {
	n := t.node(h)
	fn(h, n)
	for _, c := range n.children {
		t.eachNode(c, fn)
	}
}

func keyLabel[K any](keys []K) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strings.ReplaceAll(fmt.Sprint(k), `"`, `\"`)
	}
	return strings.Join(parts, " | ")
}

func nodeDotStyles(isleaf bool) string {
	if isleaf {
		return ",shape=box,style=filled,fillcolor=\"#CCDDFF\""
	}
	return ",shape=box,style=\"rounded,filled\",color=black,fillcolor=\"#a3d7e4\""
}
