package cli

import (
	"spica/internal/project"
	"spica/internal/repository"
	"spica/internal/service"
	"spica/internal/store"

	"github.com/spf13/cobra"
)

// App holds the store, services, and persistence used by CLI commands.
type App struct {
	Store   *store.Store
	Gen     service.GenerationService
	File    *project.FileStore
	History repository.PromptLogRepo
	Meta    project.Metadata
}

// Save snapshots the store to the project file. Mutating commands call it
// after applying their change; a nil FileStore (tests) makes it a no-op.
func (a *App) Save() error {
	if a.File == nil {
		return nil
	}
	return a.File.Save(project.Snapshot(a.Store, a.Meta))
}

// NewRootCmd creates the top-level "spica" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "spica",
		Short:         "Creative-writing authoring core with an LLM drafting pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSceneCmd(app),
		newTabCmd(app),
		newEventCmd(app),
		newCharacterCmd(app),
		newStarCmd(app),
		newConstraintCmd(app),
		newGenerateCmd(app),
		newDescribeCmd(app),
		newContextCmd(app),
		newProjectCmd(app),
		newHistoryCmd(app),
		newCheckCmd(app),
	)

	return root
}
