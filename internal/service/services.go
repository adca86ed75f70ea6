// SPDX-License-Identifier: Apache-2.0

package service

import (
	"github.com/opsboard/credvault/internal/config"
	"github.com/opsboard/credvault/internal/crypto"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/store"
)

// Services bundles the server-side service layer for handler wiring.
type Services struct {
	AuthService       AuthService
	VaultService      VaultService
	CredentialService CredentialService
}

// NewServices builds the full service layer on top of the repositories and
// keychain.
func NewServices(repositories *store.Repositories, cfg config.App, keychain crypto.KeyChainService, log *logger.Logger) *Services {
	vaultService := NewVaultService(repositories.VaultRepository, keychain, log)

	return &Services{
		AuthService:       NewAuthService(repositories.UserRepository, cfg, log),
		VaultService:      vaultService,
		CredentialService: NewCredentialService(repositories.CredentialRepository, vaultService, keychain, log),
	}
}
