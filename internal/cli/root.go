package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/xxld0125/low-code-ai-sub004/pkg/buildinfo"
)

// Execute runs the pagecore CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "pagecore",
		Short:        "pagecore validates and mutates page-builder component trees",
		Long:         `pagecore is the structural core of a visual page builder: it maintains a tree of placeable components, enforces per-type containment rules, and exposes the tree operations used by drag-and-drop editing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newServeCmd())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return root.ExecuteContext(ctx)
}
