package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xxld0125/low-code-ai-sub004/pkg/export"
	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
)

// Supported export formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// newExportCmd creates the export command rendering the hierarchy as a
// Graphviz diagram in DOT, SVG, or PNG format.
func newExportCmd() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export <page.json>",
		Short: "Export the component hierarchy as a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			page, err := loadPage(args[0])
			if err != nil {
				return err
			}
			mgr := hierarchy.NewManager(nil)
			tree, err := mgr.Build(page.comp, page.doc.RootID)
			if err != nil {
				return err
			}

			dot := export.ToDOT(tree, page.comp, export.Options{Detailed: detailed})

			var data []byte
			switch strings.ToLower(format) {
			case formatDOT:
				data = []byte(dot)
			case formatSVG:
				data, err = export.RenderSVG(dot)
			case formatPNG:
				data, err = export.RenderPNG(dot)
			default:
				return fmt.Errorf("unknown format %q (want dot, svg, or png)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				output = base + "." + format
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("exported hierarchy", "file", output, "nodes", tree.Size())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <page>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: dot, svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include depth and order in labels")
	return cmd
}
