package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
	"spica/internal/service"
)

func newGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <request>",
		Short: "Generate draft tabs for the active scene from a writing request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Gen == nil {
				return service.ErrLLMDisabled
			}

			result, err := app.Gen.GenerateTimeline(context.Background(), strings.Join(args, " "))
			if err != nil {
				return generationError(err)
			}
			if err := app.Save(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d draft tab(s) in the workbench\n\n", len(result.TabIDs))
			for _, id := range result.TabIDs {
				tab, err := app.Store.DraftTab(id)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatTabInspect(tab))
			}
			return nil
		},
	}
}

func newDescribeCmd(app *App) *cobra.Command {
	var request string

	cmd := &cobra.Command{
		Use:   "describe <tab> <event>",
		Short: "Generate prose describing one timeline event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Gen == nil {
				return service.ErrLLMDisabled
			}

			tabID, eventID, err := app.resolveTabEvent(args[0], args[1])
			if err != nil {
				return err
			}

			result, err := app.Gen.DescribeEvent(context.Background(), tabID, eventID, request)
			if err != nil {
				return generationError(err)
			}
			if err := app.Save(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Description"))
			fmt.Fprintln(cmd.OutOrStdout(), result.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&request, "request", "", "Extra guidance for the description")

	return cmd
}

func newContextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Preview the context block the next generation would send",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Gen == nil {
				return service.ErrLLMDisabled
			}
			preview, err := app.Gen.PreviewContext()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), preview)
			return nil
		},
	}
}

// generationError rewrites pipeline errors into messages with a next step.
func generationError(err error) error {
	switch {
	case errors.Is(err, service.ErrGenerationInFlight):
		return fmt.Errorf("a generation is already running, wait for it to finish")
	case errors.Is(err, service.ErrNoActiveScene):
		return fmt.Errorf("no active scene, run \"spica scene activate\" first")
	case errors.Is(err, service.ErrLLMDisabled):
		return fmt.Errorf("llm is disabled, set SPICA_LLM_ENABLED=true")
	default:
		return err
	}
}
