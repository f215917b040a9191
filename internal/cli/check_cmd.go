package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
)

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every draft tab is in exactly one location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := app.Store.ValidateLocations()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConsistencyReport(report))
			if !report.OK() {
				return fmt.Errorf("%d location invariant violation(s)", len(report.Errors))
			}
			return nil
		},
	}
}
