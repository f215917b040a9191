package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project file and metadata",
	}

	cmd.AddCommand(
		newProjectInfoCmd(app),
		newProjectSaveCmd(app),
		newProjectSetCmd(app),
	)

	return cmd
}

func newProjectInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show project metadata and content counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(app.Meta.Title))
			if app.Meta.Author != "" {
				fmt.Fprintf(out, "by %s\n", app.Meta.Author)
			}
			if app.File != nil {
				fmt.Fprintln(out, formatter.Dim("file: "+app.File.Path()))
			}
			if app.Meta.CreatedAt > 0 {
				created := time.UnixMilli(app.Meta.CreatedAt).Local()
				fmt.Fprintln(out, formatter.Dim("created: "+created.Format("2006-01-02")))
			}
			fmt.Fprintf(out, "\nscenes: %d  tabs: %d  characters: %d  stars: %d\n",
				len(app.Store.Scenes()), len(app.Store.DraftTabs()),
				len(app.Store.Characters()), len(app.Store.Stars()))
			return nil
		},
	}
}

func newProjectSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Write the project file now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Save(); err != nil {
				return err
			}
			if app.File != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", app.File.Path())
			}
			return nil
		},
	}
}

func newProjectSetCmd(app *App) *cobra.Command {
	var title, author string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update project title or author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("title") {
				app.Meta.Title = title
			}
			if cmd.Flags().Changed("author") {
				app.Meta.Author = author
			}
			return app.Save()
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&author, "author", "", "Project author")

	return cmd
}
