package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"spica/internal/cli"
	"spica/internal/db"
	"spica/internal/llm"
	"spica/internal/project"
	"spica/internal/repository"
	"spica/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zap.NewNop()
	if os.Getenv("SPICA_DEBUG") != "" {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
	}
	defer logger.Sync()

	// Plain output when piping into files or other tools.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// Project file: env var or default ~/.spica/project.json
	projectPath := os.Getenv("SPICA_PROJECT")
	if projectPath == "" {
		projectPath = project.DefaultPath()
	}
	fileStore := project.NewFileStore(projectPath, logger)

	data, err := fileStore.Load()
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	store, meta := project.Restore(data, logger)

	// Prompt history database: optional, the CLI works without it.
	var history repository.PromptLogRepo
	dbPath := os.Getenv("SPICA_DB")
	if dbPath == "" {
		dbPath = db.DefaultPath()
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		logger.Warn("prompt history unavailable", zap.String("path", dbPath), zap.Error(err))
	} else {
		defer database.Close()
		history = repository.NewSQLitePromptLogRepo(database)
	}

	app := &cli.App{
		Store:   store,
		File:    fileStore,
		History: history,
		Meta:    meta,
	}

	// Wire the generation pipeline only when the LLM is enabled.
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewZapObserver(logger)
		}
		client := llm.NewOllamaClient(llmCfg, observer)
		app.Gen = service.NewGenerationService(store, client, llmCfg, history, logger)
	}

	return cli.NewRootCmd(app).Execute()
}
