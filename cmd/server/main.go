package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/plateup/plateup-server/internal/adapter"
	"github.com/plateup/plateup-server/internal/cache"
	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/handler"
	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/mail"
	"github.com/plateup/plateup-server/internal/server"
	"github.com/plateup/plateup-server/internal/service"
	"github.com/plateup/plateup-server/internal/store"
	"github.com/plateup/plateup-server/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// .env is optional: absent in production, convenient in development
	_ = godotenv.Load()

	log := logger.NewLogger("plateup-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	provider, err := adapter.NewProviderClient(cfg.Provider, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating recipe provider client")
	}

	mailer := mail.NewSender(cfg.Mail, log)
	detailCache := cache.NewRecipeCache(cfg.Cache, log)

	services := service.NewServices(*storages, *cfg, provider, mailer, detailCache, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	jobs := workers.NewWorkers(services, *cfg, log)
	jobs.Start(ctx)
	defer jobs.Stop()

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

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
