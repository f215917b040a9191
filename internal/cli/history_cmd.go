package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var byTask bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent LLM prompt calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return fmt.Errorf("prompt history is unavailable (no database)")
			}

			ctx := context.Background()
			if byTask {
				counts, err := app.History.CountByTask(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPromptCounts(counts))
				return nil
			}

			records, err := app.History.ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPromptHistory(records))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")
	cmd.Flags().BoolVar(&byTask, "by-task", false, "Show per-task call counts instead")

	return cmd
}
