// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/internal/tui"
)

// App is the interactive dashboard application.
type App struct {
	controller service.VaultController
	ui         *tui.TUI
	logger     *logger.Logger
}

// NewApp assembles the application from its wired components.
func NewApp(controller service.VaultController, ui *tui.TUI, logger *logger.Logger) *App {
	return &App{controller: controller, ui: ui, logger: logger}
}

// Run implements [Client]. It blocks until the user quits the UI or the
// process receives a termination signal.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	a.logger.Info().Msg("starting dashboard UI")
	if err := a.ui.Run(ctx); err != nil {
		return err
	}

	// Best-effort relock so an abandoned server-side session does not keep
	// the DEK in memory until the reaper gets to it.
	if _, err := a.controller.Lock(context.Background()); err != nil {
		a.logger.Debug().Err(err).Msg("relock on exit skipped")
	}
	return nil
}
