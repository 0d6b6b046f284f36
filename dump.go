package bptree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/bptree/arena"
)

// palette colors the node kinds in Dump output.
type palette struct {
	header, inner, leaf *color.Color
}

func makePalette(colored bool) palette {
	p := palette{
		header: color.New(color.Bold),
		inner:  color.New(color.FgBlue),
		leaf:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.header, p.inner, p.leaf} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Dump writes an indented rendering of the tree to w, one node per line,
// children below their parent. Inner nodes show their separator keys,
// leaves their entries. If colored is set, node kinds are distinguished by
// terminal colors.
func (t *Tree[K, V]) Dump(w io.Writer, colored bool) error {
	p := makePalette(colored)
	if _, err := p.header.Fprintf(w, "B+ tree: order=%d len=%d height=%d\n",
		t.cfg.Order, t.Len(), t.Height()); err != nil {
		return err
	}
	if t.IsEmpty() {
		return nil
	}
	return t.dumpNode(w, p, t.root, 0)
}

func (t *Tree[K, V]) dumpNode(w io.Writer, p palette, h arena.Handle, depth int) error {
	n := t.node(h)
	indent := strings.Repeat("  ", depth)
	if n.leaf {
		entries := make([]string, len(n.keys))
		for i := range n.keys {
			entries[i] = fmt.Sprintf("%v=%v", n.keys[i], n.vals[i])
		}
		_, err := p.leaf.Fprintf(w, "%sleaf #%d {%s}\n", indent, h, strings.Join(entries, " "))
		return err
	}
	if _, err := p.inner.Fprintf(w, "%sinner #%d %v\n", indent, h, n.keys); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := t.dumpNode(w, p, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
