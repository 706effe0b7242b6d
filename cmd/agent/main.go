package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MikVR7/Homie-sub000/internal/agent"
	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/internal/logger"
)

func main() {
	log := logger.NewAgentLogger("homie-agent")

	// a missing .env file is fine, environment variables still apply
	_ = godotenv.Load()

	cfg, err := config.GetAgentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting agent configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	state, err := agent.NewSQLiteState(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local state")
	}

	scanner := agent.NewMountScanner(cfg.Scan, log)
	reporter := agent.NewHTTPReporter(cfg.Server, log)

	if err := agent.New(scanner, state, reporter, log).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("scan-and-report cycle failed")
	}

	log.Info().Msg("scan-and-report cycle completed")
}
