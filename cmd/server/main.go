package main

import (
	"context"
	"fmt"

	"github.com/ta4ilka/route-atlas/internal/blob"
	"github.com/ta4ilka/route-atlas/internal/config"
	handler "github.com/ta4ilka/route-atlas/internal/handler/http"
	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/notifier"
	"github.com/ta4ilka/route-atlas/internal/server"
	"github.com/ta4ilka/route-atlas/internal/service"
	"github.com/ta4ilka/route-atlas/internal/store"
	"github.com/ta4ilka/route-atlas/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("route-atlas-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	blobs, err := blob.NewS3(ctx, blob.S3Config{
		Region:          cfg.Storage.Blob.Region,
		Bucket:          cfg.Storage.Blob.Bucket,
		Endpoint:        cfg.Storage.Blob.Endpoint,
		AccessKeyID:     cfg.Storage.Blob.AccessKeyID,
		SecretAccessKey: cfg.Storage.Blob.SecretAccessKey,
		PathStyle:       cfg.Storage.Blob.PathStyle,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating blob store")
	}

	hub := notifier.NewHub(log)
	storages := store.NewStorages(db, log)
	services := service.NewServices(db, storages, blobs, hub, cfg, log)
	handlers := handler.NewHandler(services, hub, log)

	workers.NewWorkers(hub, log).Run(ctx)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
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

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
