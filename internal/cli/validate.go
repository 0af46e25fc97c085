package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
)

// newValidateCmd creates the validate command. It runs the rule engine over
// a page document and builds the hierarchy index, reporting errors,
// warnings, and suggestions. The command exits non-zero when the page has
// validation errors or an unwalkable tree.
func newValidateCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "validate <page.json>",
		Short: "Validate a page document against the constraint rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			page, err := loadPage(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine(rulesPath)
			if err != nil {
				return err
			}
			mgr := hierarchy.NewManager(engine)

			logger.Debug("validating page", "components", len(page.comp), "root", page.doc.RootID)

			if _, err := mgr.Build(page.comp, page.doc.RootID); err != nil {
				if errors.Is(err, hierarchy.ErrCycleDetected) {
					fmt.Fprintln(cmd.OutOrStdout(), styleError.Render(iconError+" "+err.Error()))
					return fmt.Errorf("page tree is corrupted")
				}
				return err
			}

			out := engine.EvaluateTree(page.comp, page.doc.RootID)
			printOutcome(cmd.OutOrStdout(), out)
			if !out.IsValid {
				return fmt.Errorf("page is invalid (%d errors)", len(out.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "TOML rule-table overrides")
	return cmd
}
