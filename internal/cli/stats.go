package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
)

// newStatsCmd creates the stats command reporting component counts, maximum
// depth, per-type tallies, and orphaned components.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <page.json>",
		Short: "Print structure statistics for a page document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := loadPage(args[0])
			if err != nil {
				return err
			}

			mgr := hierarchy.NewManager(nil)
			stats := mgr.Statistics(page.comp)
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, styleTitle.Render("Page statistics"))
			fmt.Fprintf(w, "  components: %s\n", styleValue.Render(fmt.Sprint(stats.TotalComponents)))
			fmt.Fprintf(w, "  max depth:  %s\n", styleValue.Render(fmt.Sprint(stats.MaxDepth)))

			for _, t := range slices.Sorted(maps.Keys(stats.CountsByType)) {
				fmt.Fprintf(w, "  %-11s %d\n", string(t)+":", stats.CountsByType[t])
			}

			if len(stats.OrphanedComponentIDs) > 0 {
				fmt.Fprintln(w, styleWarning.Render(fmt.Sprintf("%s %d orphaned component(s):", iconWarning, len(stats.OrphanedComponentIDs))))
				for _, id := range stats.OrphanedComponentIDs {
					fmt.Fprintf(w, "    %s\n", styleDim.Render(id))
				}
			}
			return nil
		},
	}
}
