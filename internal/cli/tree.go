package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
)

// newTreeCmd creates the tree command printing the component hierarchy as a
// styled outline, parents before children in sibling order.
func newTreeCmd() *cobra.Command {
	var showPaths bool

	cmd := &cobra.Command{
		Use:   "tree <page.json>",
		Short: "Print the component hierarchy as an outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := loadPage(args[0])
			if err != nil {
				return err
			}

			mgr := hierarchy.NewManager(nil)
			tree, err := mgr.Build(page.comp, page.doc.RootID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			tree.Walk(func(n *hierarchy.Node) {
				rec := page.comp[n.ComponentID]
				indent := ""
				for i := 0; i < n.Depth; i++ {
					indent += "  "
				}
				line := indent + styleTitle.Render(string(rec.Type)) + " " + styleDim.Render(rec.ID)
				if showPaths {
					line += " " + styleDim.Render(n.Path)
				}
				fmt.Fprintln(w, line)
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPaths, "paths", false, "show full node paths")
	return cmd
}
