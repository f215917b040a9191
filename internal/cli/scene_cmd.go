package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
	"spica/internal/domain"
)

func newSceneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Manage scenes",
	}

	cmd.AddCommand(
		newSceneAddCmd(app),
		newSceneListCmd(app),
		newSceneInspectCmd(app),
		newSceneActivateCmd(app),
		newSceneSetCmd(app),
		newScenePlanCmd(app),
		newSceneRemoveCmd(app),
	)

	return cmd
}

func newSceneAddCmd(app *App) *cobra.Command {
	var activate bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := app.Store.CreateScene(args[0])
			if activate {
				if err := app.Store.SetActiveScene(id); err != nil {
					return err
				}
			}
			if err := app.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created scene %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&activate, "activate", false, "Make the new scene the active scene")

	return cmd
}

func newSceneListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSceneList(app.Store.Scenes(), app.Store.ActiveSceneID()))
			return nil
		},
	}
}

func newSceneInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <scene>",
		Short: "Show a scene's plan and draft tabs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSceneID(args[0])
			if err != nil {
				return err
			}
			sc, err := app.Store.Scene(id)
			if err != nil {
				return err
			}
			tabs, err := app.Store.SceneTabs(id)
			if err != nil {
				return err
			}
			steps := make([]*domain.PlanStep, 0, len(sc.Plan.ParsedSteps))
			for _, stepID := range sc.Plan.ParsedSteps {
				if st, err := app.Store.PlanStep(stepID); err == nil {
					steps = append(steps, st)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSceneInspect(sc, steps, tabs))
			return nil
		},
	}
}

func newSceneActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <scene>",
		Short: "Set the active scene used for generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSceneID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.SetActiveScene(id); err != nil {
				return err
			}
			if err := app.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active scene is now %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newSceneSetCmd(app *App) *cobra.Command {
	var name, setting, backstory string

	cmd := &cobra.Command{
		Use:   "set <scene>",
		Short: "Update a scene's name, setting, or backstory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSceneID(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				if err := app.Store.SetSceneName(id, name); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("setting") {
				if err := app.Store.SetSceneSetting(id, setting); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("backstory") {
				if err := app.Store.SetSceneBackstory(id, backstory); err != nil {
					return err
				}
			}
			return app.Save()
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Scene name")
	cmd.Flags().StringVar(&setting, "setting", "", "Scene setting")
	cmd.Flags().StringVar(&backstory, "backstory", "", "Scene backstory")

	return cmd
}

func newSceneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <scene>",
		Short: "Delete a scene and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSceneID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteScene(id); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newScenePlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage a scene's plan",
	}

	cmd.AddCommand(
		newScenePlanSetCmd(app),
		newScenePlanAddCmd(app),
		newScenePlanRemoveCmd(app),
		newScenePlanLinkCmd(app),
		newScenePlanUnlinkCmd(app),
	)

	return cmd
}

func newScenePlanSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <scene> <text>",
		Short: "Set the plan's freeform text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSceneID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.SetScenePlanText(id, args[1]); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newScenePlanAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <scene> <text>",
		Short: "Append a parsed plan step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveSceneID(args[0])
			if err != nil {
				return err
			}
			stepID, err := app.Store.CreatePlanStep(id, args[1])
			if err != nil {
				return err
			}
			if err := app.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan step %s\n", formatter.TruncID(stepID))
			return nil
		},
	}
}

func newScenePlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <step-id>",
		Short: "Delete a plan step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.DeletePlanStep(args[0]); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newScenePlanLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link <step-id> <tab>",
		Short: "Mark a draft tab as fulfilling a plan step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, err := app.resolveTabID(args[1])
			if err != nil {
				return err
			}
			if err := app.Store.LinkPlanStepToTab(args[0], tabID); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newScenePlanUnlinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <step-id> <tab>",
		Short: "Remove a fulfills link between a plan step and a tab",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, err := app.resolveTabID(args[1])
			if err != nil {
				return err
			}
			if err := app.Store.UnlinkPlanStepFromTab(args[0], tabID); err != nil {
				return err
			}
			return app.Save()
		},
	}
}
