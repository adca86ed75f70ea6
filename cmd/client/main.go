package main

import (
	"fmt"

	"github.com/opsboard/credvault/internal/adapter"
	"github.com/opsboard/credvault/internal/client"
	"github.com/opsboard/credvault/internal/config"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/internal/tui"
)

// Injected at build time via -ldflags.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("credvault-client")

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	vaultAdapter, err := adapter.NewHTTPVaultAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating vault adapter")
	}

	controller := service.NewVaultController(vaultAdapter, log)
	ui := tui.New(controller, buildVersion, log)

	if err := client.NewApp(controller, ui, log).Run(); err != nil {
		log.Fatal().Err(err).Msg("client exited with error")
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
