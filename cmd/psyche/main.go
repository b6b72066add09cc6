package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/psyche/internal/cli"
	"github.com/alexanderramin/psyche/internal/config"
	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/instrument"
	"github.com/alexanderramin/psyche/internal/intelligence"
	"github.com/alexanderramin/psyche/internal/llm"
	"github.com/alexanderramin/psyche/internal/logging"
	"github.com/alexanderramin/psyche/internal/recommend"
	"github.com/alexanderramin/psyche/internal/repository"
	"github.com/alexanderramin/psyche/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

const llmProbeTimeout = 2 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags are needed before the command tree exists, so parse them
	// once here and let cobra parse everything again later.
	flags := pflag.NewFlagSet("psyche", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	cli.RegisterGlobalFlags(flags)
	_ = flags.Parse(os.Args[1:])

	configFile, _ := flags.GetString("config")
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	registry, err := instrument.Load(cfg.Instruments.Dir)
	if err != nil {
		return fmt.Errorf("loading instruments: %w", err)
	}

	// Wire repositories
	resultRepo := repository.NewSQLiteResultRepo(database)
	interpRepo := repository.NewSQLiteInterpretationRepo(database)
	moodRepo := repository.NewSQLiteMoodRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	contentRepo := repository.NewSQLiteContentRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(log)

	// The narrative is written by the LLM only when it is enabled and
	// answering; otherwise the deterministic narrator is used.
	var narrator intelligence.Narrator
	if cfg.LLM.Enabled {
		client := llm.NewOllamaClient(cfg.LLM.Client(), llm.NewLogObserver(log))
		ctx, cancel := context.WithTimeout(context.Background(), llmProbeTimeout)
		narrator = intelligence.SelectNarrator(ctx, client)
		cancel()
		if _, ok := narrator.(intelligence.DeterministicNarrator); ok {
			log.Warn("llm unavailable, using deterministic narrative", "endpoint", cfg.LLM.Endpoint)
		}
	}

	profiles := service.NewProfileService(resultRepo, moodRepo, profileRepo, uow, registry, narrator,
		cfg.Aggregation, log, observer)

	app := &cli.App{
		Instruments:      registry,
		Submissions:      service.NewSubmissionService(registry, uow, profiles, log, observer),
		Results:          service.NewResultService(resultRepo, interpRepo),
		Profiles:         profiles,
		Recommendations:  service.NewRecommendationService(profiles, recommend.New(contentRepo, log), observer),
		Moods:            service.NewMoodService(moodRepo, profiles, log, observer),
		Content:          service.NewContentService(contentRepo, uow, observer),
		NarrativeEnabled: cfg.LLM.Enabled,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
