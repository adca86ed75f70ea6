// SPDX-License-Identifier: Apache-2.0

// Package tui implements the interactive terminal dashboard for the
// credential vault.
//
// The UI is a single Bubble Tea program routing between screens: account
// sign-in, vault setup/unlock, the masked credential listing with search and
// category filtering, the credential detail view with the reveal and copy
// protocol, and the create/edit form. All vault interaction goes through
// [service.VaultController]; the UI never touches the transport or caches
// decrypted data itself.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/service"
)

// TUI runs the terminal dashboard on top of a session controller.
type TUI struct {
	controller service.VaultController
	version    string
	logger     *logger.Logger
}

// New creates the dashboard UI. The version string is shown on the welcome
// screen.
func New(controller service.VaultController, version string, logger *logger.Logger) *TUI {
	return &TUI{controller: controller, version: version, logger: logger}
}

// Run starts the interactive program and blocks until the user quits or ctx
// is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.controller, t.version)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		t.logger.Err(err).Msg("terminal UI stopped with error")
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
