package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
	"spica/internal/domain"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage timeline events within a draft tab",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventSetCmd(app),
		newEventCheckCmd(app, true),
		newEventCheckCmd(app, false),
		newEventRemoveCmd(app),
		newEventDescribeManualCmd(app),
		newEventAnnotationRemoveCmd(app),
	)

	return cmd
}

// resolveTabEvent resolves a tab input and an event input within that tab.
func (a *App) resolveTabEvent(tabInput, eventInput string) (string, string, error) {
	tabID, err := a.resolveTabID(tabInput)
	if err != nil {
		return "", "", err
	}
	tab, err := a.Store.DraftTab(tabID)
	if err != nil {
		return "", "", err
	}
	eventID, err := a.resolveEventID(tab, eventInput)
	if err != nil {
		return "", "", err
	}
	return tabID, eventID, nil
}

func newEventAddCmd(app *App) *cobra.Command {
	var dialogue string
	var checked bool

	cmd := &cobra.Command{
		Use:   "add <tab> <text>",
		Short: "Append a timeline event to a draft tab",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, err := app.resolveTabID(args[0])
			if err != nil {
				return err
			}
			eventID, err := app.Store.AddTimelineEvent(tabID, args[1], dialogue, checked)
			if err != nil {
				return err
			}
			if err := app.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s\n", formatter.TruncID(eventID))
			return nil
		},
	}

	cmd.Flags().StringVar(&dialogue, "dialogue", "", "Spoken line attached to the event")
	cmd.Flags().BoolVar(&checked, "checked", false, "Include the event in the next generation context")

	return cmd
}

func newEventSetCmd(app *App) *cobra.Command {
	var text, dialogue string

	cmd := &cobra.Command{
		Use:   "set <tab> <event>",
		Short: "Update an event's text or dialogue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, eventID, err := app.resolveTabEvent(args[0], args[1])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("text") {
				if err := app.Store.SetEventText(tabID, eventID, text); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("dialogue") {
				if err := app.Store.SetEventDialogue(tabID, eventID, dialogue); err != nil {
					return err
				}
			}
			return app.Save()
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Event text")
	cmd.Flags().StringVar(&dialogue, "dialogue", "", "Event dialogue")

	return cmd
}

func newEventCheckCmd(app *App, checked bool) *cobra.Command {
	use, short := "check <tab> <event>", "Mark an event for inclusion in generation context"
	if !checked {
		use, short = "uncheck <tab> <event>", "Exclude an event from generation context"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, eventID, err := app.resolveTabEvent(args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Store.SetEventChecked(tabID, eventID, checked); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <tab> <event>",
		Short: "Delete a timeline event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, eventID, err := app.resolveTabEvent(args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteTimelineEvent(tabID, eventID); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newEventDescribeManualCmd(app *App) *cobra.Command {
	var important bool

	cmd := &cobra.Command{
		Use:   "annotate <tab> <event> <text>",
		Short: "Attach a hand-written description to an event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, eventID, err := app.resolveTabEvent(args[0], args[1])
			if err != nil {
				return err
			}
			descID, err := app.Store.AddDescription(tabID, domain.Description{
				Text:          args[2],
				IsImportant:   important,
				Scope:         domain.DescScopeEvent,
				TargetEventID: eventID,
			})
			if err != nil {
				return err
			}
			if err := app.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created description %s\n", formatter.TruncID(descID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&important, "important", false, "Mark the description as important")

	return cmd
}

func newEventAnnotationRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "annotate-rm <tab> <description-id>",
		Short: "Remove a description from a draft tab",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, err := app.resolveTabID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteDescription(tabID, args[1]); err != nil {
				return err
			}
			return app.Save()
		},
	}
}
