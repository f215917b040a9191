package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
	"spica/internal/domain"
	"spica/internal/store"
)

func newStarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "star",
		Short: "Manage fact and constraint stars",
	}

	cmd.AddCommand(
		newStarAddCmd(app),
		newStarListCmd(app),
		newStarInspectCmd(app),
		newStarCheckCmd(app, true),
		newStarCheckCmd(app, false),
		newStarPriorityCmd(app),
		newStarLinkCmd(app),
		newStarUnlinkCmd(app),
		newStarLinkStepCmd(app),
		newStarRemoveCmd(app),
	)

	return cmd
}

func newStarAddCmd(app *App) *cobra.Command {
	var body, scope, status, originTab string
	var tags, characters []string
	var priority float64
	var checked bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a fact star",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := store.StarInput{
				Title:     args[0],
				Body:      body,
				Priority:  priority,
				IsChecked: checked,
			}
			in.Tags.Scope = domain.StarScope(scope)
			in.Tags.Status = domain.StarStatus(status)
			in.Tags.Custom = tags

			for _, c := range characters {
				id, err := app.resolveCharacterID(c)
				if err != nil {
					return err
				}
				in.Tags.Characters = append(in.Tags.Characters, id)
			}
			if originTab != "" {
				tabID, err := app.resolveTabID(originTab)
				if err != nil {
					return err
				}
				in.OriginDraftTabID = tabID
			}

			id := app.Store.CreateStar(in)
			if err := app.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created star %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Star body text")
	cmd.Flags().Float64Var(&priority, "priority", 0.5, "Priority from 0.0 to 1.0")
	cmd.Flags().BoolVar(&checked, "checked", false, "Include the star in the next generation context")
	cmd.Flags().StringVar(&scope, "scope", string(domain.ScopeCurrentScene), "Star scope tag")
	cmd.Flags().StringVar(&status, "status", string(domain.StarActive), "Star status tag")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Custom tag (repeatable)")
	cmd.Flags().StringArrayVar(&characters, "character", nil, "Related character (repeatable)")
	cmd.Flags().StringVar(&originTab, "origin-tab", "", "Draft tab the star came from")

	return cmd
}

func newStarListCmd(app *App) *cobra.Command {
	var checkedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stars := app.Store.Stars()
			if checkedOnly {
				stars = app.Store.CheckedStars()
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStarList(stars, app.characterNames()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkedOnly, "checked", false, "Only show checked stars")

	return cmd
}

func newStarInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <star>",
		Short: "Show a star in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveStarID(args[0])
			if err != nil {
				return err
			}
			st, err := app.Store.Star(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStarInspect(st, app.characterNames()))
			return nil
		},
	}
}

func newStarCheckCmd(app *App, checked bool) *cobra.Command {
	use, short := "check <star>", "Include the star in generation context"
	if !checked {
		use, short = "uncheck <star>", "Exclude the star from generation context"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveStarID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.SetStarChecked(id, checked); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newStarPriorityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <star> <value>",
		Short: "Set a star's priority (0.0 to 1.0)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveStarID(args[0])
			if err != nil {
				return err
			}
			var priority float64
			if _, err := fmt.Sscanf(args[1], "%f", &priority); err != nil {
				return fmt.Errorf("invalid priority %q: %w", args[1], err)
			}
			if err := app.Store.SetStarPriority(id, priority); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newStarLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link <star> <tab> <event>",
		Short: "Associate a star with a timeline event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			starID, err := app.resolveStarID(args[0])
			if err != nil {
				return err
			}
			tabID, eventID, err := app.resolveTabEvent(args[1], args[2])
			if err != nil {
				return err
			}
			if err := app.Store.LinkStarToEvent(starID, tabID, eventID); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newStarUnlinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <star> <tab> <event>",
		Short: "Remove a star's association with a timeline event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			starID, err := app.resolveStarID(args[0])
			if err != nil {
				return err
			}
			tabID, eventID, err := app.resolveTabEvent(args[1], args[2])
			if err != nil {
				return err
			}
			if err := app.Store.UnlinkStarFromEvent(starID, tabID, eventID); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newStarLinkStepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link-step <star> <step-id>",
		Short: "Associate a star with a plan step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			starID, err := app.resolveStarID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.LinkStarToPlanStep(starID, args[1]); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newStarRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <star>",
		Short: "Delete a star",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveStarID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteStar(id); err != nil {
				return err
			}
			return app.Save()
		},
	}
}
