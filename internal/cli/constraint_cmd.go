package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
	"spica/internal/domain"
	"spica/internal/store"
)

func newConstraintCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "constraint",
		Short: "Manage character constraints",
	}

	cmd.AddCommand(
		newConstraintAddCmd(app),
		newConstraintDetectCmd(app),
		newConstraintTypesCmd(),
	)

	return cmd
}

func newConstraintAddCmd(app *App) *cobra.Command {
	var ctype, title, description, situation string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <tab> <event> <character>",
		Short: "Create a character constraint anchored to a timeline event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, eventID, err := app.resolveTabEvent(args[0], args[1])
			if err != nil {
				return err
			}
			charID, err := app.resolveCharacterID(args[2])
			if err != nil {
				return err
			}

			id, err := app.Store.CreateCharacterConstraint(eventID, tabID, charID, store.ConstraintInput{
				Type:             domain.ConstraintType(ctype),
				Title:            title,
				Description:      description,
				SituationContext: situation,
				ConstraintTags:   tags,
			})
			if err != nil {
				return err
			}
			if err := app.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created constraint %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&ctype, "type", string(domain.ConstraintBehavior), "Constraint type")
	cmd.Flags().StringVar(&title, "title", "", "Short constraint title")
	cmd.Flags().StringVar(&description, "description", "", "Constraint rule text")
	cmd.Flags().StringVar(&situation, "situation", "", "When the constraint applies, e.g. \"when angry\"")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Constraint context tag (repeatable)")

	return cmd
}

func newConstraintDetectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <tab> <event>",
		Short: "Suggest which characters an event's text mentions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, eventID, err := app.resolveTabEvent(args[0], args[1])
			if err != nil {
				return err
			}
			tab, err := app.Store.DraftTab(tabID)
			if err != nil {
				return err
			}
			ev := tab.FindEvent(eventID)
			if ev == nil {
				return fmt.Errorf("event %s: %w", eventID, store.ErrNotFound)
			}

			names := app.characterNames()
			matches := app.Store.DetectCharactersInEvent(ev.Text + " " + ev.Dialogue)
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("no known characters mentioned"))
				return nil
			}
			for _, id := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Dim(formatter.TruncID(id)), formatter.Bold(names[id]))
			}
			return nil
		},
	}
}

func newConstraintTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the accepted constraint types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types := make([]string, 0, len(domain.ValidConstraintTypes))
			for t := range domain.ValidConstraintTypes {
				types = append(types, t)
			}
			sort.Strings(types)
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(types, "\n"))
			return nil
		},
	}
}
