package tui

import (
	"github.com/opsboard/credvault/models"
)

type authDoneMsg struct {
	user models.User
	err  error
}

type statusLoadedMsg struct {
	session models.VaultSession
	err     error
}

// vaultChangedMsg carries the outcome of setup, unlock, and lock.
type vaultChangedMsg struct {
	session models.VaultSession
	err     error
}

type listRefreshedMsg struct {
	items []models.CredentialMasked
	err   error
}

type credentialOpenedMsg struct {
	cred models.CredentialDecrypted
	err  error
}

type revealToggledMsg struct {
	field   string
	visible bool
	err     error
}

type copiedMsg struct {
	field models.CredentialField
	err   error
}

// copyExpiredMsg only triggers a re-render after the copy badge TTL; the
// badge state itself lives in the session controller.
type copyExpiredMsg struct{}

type savedMsg struct {
	item    models.CredentialMasked
	editing bool
	err     error
}

type deletedMsg struct {
	id  string
	err error
}

type clearStatusMsg struct{}
