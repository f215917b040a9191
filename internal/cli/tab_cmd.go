package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
	"spica/internal/domain"
)

func newTabCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tab",
		Short: "Manage draft tabs",
	}

	cmd.AddCommand(
		newTabAddCmd(app),
		newTabListCmd(app),
		newTabInspectCmd(app),
		newTabMoveCmd(app),
		newTabReorderCmd(app),
		newTabRemoveCmd(app),
	)

	return cmd
}

func newTabAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Create an empty draft tab in the workbench",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := app.Store.CreateDraftTab()
			if err := app.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created draft tab %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newTabListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List draft tabs across all locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTabList(app.Store.DraftTabs()))
			return nil
		},
	}
}

func newTabInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <tab>",
		Short: "Show a draft tab's timeline and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveTabID(args[0])
			if err != nil {
				return err
			}
			tab, err := app.Store.DraftTab(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTabInspect(tab))
			return nil
		},
	}
}

func newTabMoveCmd(app *App) *cobra.Command {
	var toScene string
	var toWorkbench, toIdeaBank bool

	cmd := &cobra.Command{
		Use:   "move <tab>",
		Short: "Move a draft tab to a scene, the workbench, or the idea bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveTabID(args[0])
			if err != nil {
				return err
			}

			set := 0
			if toScene != "" {
				set++
			}
			if toWorkbench {
				set++
			}
			if toIdeaBank {
				set++
			}
			if set != 1 {
				return fmt.Errorf("exactly one of --scene, --workbench, --idea-bank is required")
			}

			switch {
			case toScene != "":
				sceneID, err := app.resolveSceneID(toScene)
				if err != nil {
					return err
				}
				err = app.Store.MoveToScene(id, sceneID)
				if err != nil {
					return err
				}
			case toWorkbench:
				if err := app.Store.MoveToWorkbench(id); err != nil {
					return err
				}
			case toIdeaBank:
				if err := app.Store.MoveToIdeaBank(id); err != nil {
					return err
				}
			}
			return app.Save()
		},
	}

	cmd.Flags().StringVar(&toScene, "scene", "", "Destination scene")
	cmd.Flags().BoolVar(&toWorkbench, "workbench", false, "Move to the workbench")
	cmd.Flags().BoolVar(&toIdeaBank, "idea-bank", false, "Move to the idea bank")

	return cmd
}

func newTabReorderCmd(app *App) *cobra.Command {
	var sceneInput string
	var workbench, ideaBank bool

	cmd := &cobra.Command{
		Use:   "reorder <tab-id>...",
		Short: "Reorder tabs within one container",
		Long: "Reorder tabs within a scene, the workbench, or the idea bank. " +
			"Tabs in the container but missing from the arguments keep their relative order at the end.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]string, 0, len(args))
			for _, arg := range args {
				id, err := app.resolveTabID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			var kind domain.LocationKind
			var containerID string
			switch {
			case sceneInput != "":
				sceneID, err := app.resolveSceneID(sceneInput)
				if err != nil {
					return err
				}
				kind, containerID = domain.LocationScene, sceneID
			case workbench:
				kind = domain.LocationWorkbench
			case ideaBank:
				kind = domain.LocationIdeaBank
			default:
				return fmt.Errorf("one of --scene, --workbench, --idea-bank is required")
			}

			if err := app.Store.Reorder(kind, containerID, ids); err != nil {
				return err
			}
			return app.Save()
		},
	}

	cmd.Flags().StringVar(&sceneInput, "scene", "", "Reorder within this scene")
	cmd.Flags().BoolVar(&workbench, "workbench", false, "Reorder the workbench")
	cmd.Flags().BoolVar(&ideaBank, "idea-bank", false, "Reorder the idea bank")

	return cmd
}

func newTabRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <tab>",
		Short: "Delete a draft tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveTabID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteDraftTab(id); err != nil {
				return err
			}
			return app.Save()
		},
	}
}
