package main

import (
	"context"
	"embed"
	"os"

	"playbook/internal/ai"
	"playbook/internal/application"
	"playbook/internal/delivery/discord"
	"playbook/internal/delivery/rest"
	"playbook/internal/delivery/telegram"
	"playbook/internal/integration"
	"playbook/internal/metrics"
	"playbook/internal/mlbstats"
	"playbook/internal/repository"
	"playbook/pkg/config"
	"playbook/pkg/logger"
	service "playbook/pkg/services"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := repository.NewPostgresDB(ctx, &cfg.Repo)
	if err != nil {
		log.Error("failed to init db: %s", err.Error())
		return err
	}
	defer db.Close()

	log.Info("Running migrations...")
	version, err := repository.RunMigrations(db, migrationFS)
	if err != nil {
		log.Error("failed to run migrations: %s", err.Error())
		return err
	}
	log.Info("Migrations applied, schema version %d", version)

	repos := repository.NewRepository(db)
	recorder := metrics.NewRecorder()

	var googleOpts []option.ClientOption
	if cfg.GoogleCredentialsFile != "" {
		googleOpts = append(googleOpts, option.WithCredentialsFile(cfg.GoogleCredentialsFile))
	}

	stats := mlbstats.NewClient(mlbstats.Config{
		BaseURL:       cfg.MLB.BaseURL,
		Timeout:       cfg.MLB.Timeout,
		RetryAttempts: cfg.MLB.RetryAttempts,
		RetryBackoff:  cfg.MLB.RetryBackoff,
	}, log, recorder)

	gemini, err := ai.NewGeminiClient(ctx, ai.GeminiConfig{
		APIKey:       cfg.Gemini.APIKey,
		SummaryModel: cfg.Gemini.SummaryModel,
		ChatModel:    cfg.Gemini.ChatModel,
	}, recorder)
	if err != nil {
		log.Error("failed to init gemini: %s", err.Error())
		return err
	}
	defer gemini.Close()

	imagen, err := ai.NewImagenClient(ctx, ai.ImagenConfig{
		Project:  cfg.Vertex.Project,
		Location: cfg.Vertex.Location,
		Model:    cfg.Vertex.ImageModel,
	}, recorder, googleOpts...)
	if err != nil {
		log.Error("failed to init imagen: %s", err.Error())
		return err
	}

	translationProject := cfg.TranslationProject
	if translationProject == "" {
		translationProject = cfg.Vertex.Project
	}
	translator, err := integration.NewTranslateService(ctx, translationProject, recorder, googleOpts...)
	if err != nil {
		log.Error("failed to init translation: %s", err.Error())
		return err
	}

	objects, err := integration.NewObjectStore(ctx, cfg.Storage.Bucket, recorder, googleOpts...)
	if err != nil {
		log.Error("failed to init storage: %s", err.Error())
		return err
	}

	identity, err := integration.NewIdentityService(ctx, recorder,
		append([]option.ClientOption{option.WithAPIKey(cfg.Identity.APIKey)}, googleOpts...)...)
	if err != nil {
		log.Error("failed to init identity: %s", err.Error())
		return err
	}

	var sheets application.SheetPublisher
	if cfg.Sheets.Enabled {
		publisher, err := integration.NewSheetPublisher(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.OwnerEmail, recorder, googleOpts...)
		if err != nil {
			log.Error("failed to init sheets: %s", err.Error())
			return err
		}
		sheets = publisher
	}

	services := application.NewService(application.Deps{
		Stats:      stats,
		Generator:  gemini,
		Answerer:   gemini,
		Images:     imagen,
		Thumbnails: ai.NewImageProcessor(),
		Translator: translator,
		Objects:    objects,
		Identity:   identity,
		Sheets:     sheets,
		Summaries:  repos.Summary,
		Users:      repos.User,
		Teams:      repository.NewTeamCache(),
		Metrics:    recorder,
	}, application.Options{
		BannerPrefix:     cfg.Storage.Prefix,
		DefaultPlayLimit: cfg.DefaultPlayLimit,
		SessionSecret:    cfg.Session.Secret,
		SessionTTL:       cfg.Session.TTL,
	}, log)

	manager := service.NewManager(log)
	manager.AddService(rest.NewServer(cfg.HTTP, cfg.Session, services, recorder, log))

	if cfg.DiscordToken != "" {
		bot, err := discord.NewBot(cfg.DiscordToken, cfg.DiscordGuildID, services, log)
		if err != nil {
			log.Error("failed to init discord bot: %s", err.Error())
			return err
		}
		manager.AddService(bot)
	}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, services, log)
		if err != nil {
			log.Error("failed to init telegram bot: %s", err.Error())
			return err
		}
		manager.AddService(bot)
	}

	if err := manager.Run(ctx); err != nil {
		log.Error("service manager: %s", err.Error())
		return err
	}
	log.Info("Stopped")
	return nil
}
