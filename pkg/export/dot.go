// Package export renders component hierarchies as Graphviz diagrams.
//
// The DOT output is a debugging and documentation aid for page authors: each
// component becomes a box labeled with its type and ID, parent links become
// edges, and grid components are tinted so rows and columns stand out.
// Rendering to SVG or PNG goes through the embedded Graphviz engine, so no
// system Graphviz installation is required.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes depth and order in node labels.
	Detailed bool
}

// ToDOT converts a built hierarchy to Graphviz DOT. Nodes appear in
// depth-first sibling order, so output is deterministic for a given tree.
func ToDOT(tree *hierarchy.Tree, components component.Map, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph page {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	tree.Walk(func(n *hierarchy.Node) {
		rec := components[n.ComponentID]
		label := fmtLabel(rec, n, opts.Detailed)
		attrs := fmtAttrs(rec, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ComponentID, strings.Join(attrs, ", "))
	})

	buf.WriteString("\n")
	tree.Walk(func(n *hierarchy.Node) {
		for _, child := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ComponentID, child)
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(rec component.Record, n *hierarchy.Node, detailed bool) string {
	label := fmt.Sprintf("%s\n%s", rec.Type, rec.ID)
	if detailed {
		label += fmt.Sprintf("\ndepth: %d, order: %d", n.Depth, rec.Order)
	}
	return label
}

func fmtAttrs(rec component.Record, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch rec.Type {
	case component.TypeRow:
		attrs = append(attrs, "fillcolor=lightyellow")
	case component.TypeCol:
		attrs = append(attrs, "fillcolor=lightcyan")
	case component.TypePage:
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG bytes.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG bytes.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
