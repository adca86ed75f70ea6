package store

import "github.com/opsboard/credvault/internal/logger"

// Repositories bundles every persistence interface the service layer needs.
type Repositories struct {
	UserRepository       UserRepository
	VaultRepository      VaultRepository
	CredentialRepository CredentialRepository
}

// NewRepositories wires all repositories onto one database connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db, log),
		VaultRepository:      NewVaultRepository(db, log),
		CredentialRepository: NewCredentialRepository(db, log),
	}
}
