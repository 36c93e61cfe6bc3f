package storage

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/dagflow/core"
)

// Row is one line of a tabular export: a leaf's dotted path plus whatever
// summary fields apply to it.
type Row struct {
	Path  string
	Kind  string
	Shape string
	Extra string
}

// ToRows flattens s into Rows, sorted by path, for export or assertions in
// tests.
func ToRows(s *NodeStorage) []Row {
	var rows []Row
	_ = s.Walk(func(path string, v any) error {
		row := Row{Path: path}
		switch val := v.(type) {
		case *core.Node:
			row.Kind = "node"
			row.Extra = val.Name()
		case *core.Input:
			row.Kind = "input"
			if dd := val.DD(); dd != nil {
				row.Shape = fmt.Sprint(dd.Shape)
			}
		case *core.Output:
			row.Kind = "output"
			if dd := val.DD(); dd != nil {
				row.Shape = fmt.Sprint(dd.Shape)
			}
		default:
			row.Kind = "value"
			row.Extra = fmt.Sprint(val)
		}
		rows = append(rows, row)
		return nil
	})
	return rows
}

// ToTable renders s as a tab-aligned table (path, kind, shape, extra) to w:
// a minimal tabular export, no ROOT/LaTeX/plotting, just a deterministic
// text rendering suitable for logs and test assertions.
func ToTable(w io.Writer, s *NodeStorage) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tKIND\tSHAPE\tEXTRA")
	for _, row := range ToRows(s) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Path, row.Kind, row.Shape, row.Extra)
	}
	return tw.Flush()
}

// WriteDOT renders s as a minimal Graphviz DOT graph: one node per
// *core.Node leaf, one edge per parent/child node pair visible among the
// leaves (several connections between the same two nodes share one edge).
// It is not a general DOT exporter, just enough to visualize a
// NodeStorage's node set.
func WriteDOT(w io.Writer, s *NodeStorage) error {
	fmt.Fprintln(w, "digraph dagflow {")
	nodes := make(map[*core.Node]string)
	_ = s.Walk(func(path string, v any) error {
		n, ok := v.(*core.Node)
		if !ok {
			return nil
		}
		nodes[n] = path
		fmt.Fprintf(w, "  %q;\n", path)
		return nil
	})
	for n, path := range nodes {
		for _, child := range n.Children() {
			if childPath, ok := nodes[child]; ok {
				fmt.Fprintf(w, "  %q -> %q;\n", path, childPath)
			}
		}
	}
	fmt.Fprintln(w, "}")
	return nil
}
