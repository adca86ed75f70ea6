package main

import (
	"context"
	"fmt"

	"github.com/opsboard/credvault/internal/config"
	"github.com/opsboard/credvault/internal/crypto"
	handler "github.com/opsboard/credvault/internal/handler/http"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/server"
	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/internal/store"
	"github.com/opsboard/credvault/internal/workers"
	"github.com/opsboard/credvault/models"
)

// Injected at build time via -ldflags.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("credvault-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configuration")
	}

	ctx := context.Background()

	db, err := connectDatabase(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)
	services := service.NewServices(repositories, cfg.App, crypto.NewKeyChainService(), log)

	workers.NewWorkers(
		workers.NewSessionReaper(services.VaultService, cfg.Vault, log),
	).Run()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	router := handler.NewHandler(services, buildInfo, log).Init()

	srv, err := server.NewServer(router, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func connectDatabase(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.DB, error) {
	switch cfg.Driver {
	case store.DialectSQLite:
		return store.NewConnectSQLite(ctx, cfg, log)
	default:
		return store.NewConnectPostgres(ctx, cfg, log)
	}
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
