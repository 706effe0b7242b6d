package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/MikVR7/Homie-sub000/internal/adapter"
	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/internal/executor"
	"github.com/MikVR7/Homie-sub000/internal/handler"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/server"
	"github.com/MikVR7/Homie-sub000/internal/service"
	"github.com/MikVR7/Homie-sub000/internal/store"
	"github.com/MikVR7/Homie-sub000/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("homie-server")

	// a missing .env file is fine, environment variables still apply
	_ = godotenv.Load()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	suggester := adapter.NewHTTPSuggestionAdapter(cfg.Suggestion)
	fs := executor.NewOSFileExecutor(log)

	services, err := service.NewServices(storages, suggester, fs, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
