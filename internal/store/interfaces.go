package store

import (
	"context"

	"github.com/opsboard/credvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/repositories_mock.go -package=mock

// UserRepository persists dashboard accounts.
type UserRepository interface {
	// CreateUser stores a new account and returns it with server-assigned
	// fields populated. Returns [ErrLoginAlreadyExists] on a duplicate login.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin looks up an account by its login. Returns
	// [ErrNoUserWasFound] when no such account exists.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// VaultRepository persists per-user vault key material.
type VaultRepository interface {
	// CreateVault stores the key material of a freshly provisioned vault.
	// Returns [ErrVaultAlreadyExists] when the user already has one.
	CreateVault(ctx context.Context, vault models.VaultRecord) (models.VaultRecord, error)

	// GetVault fetches the key material for userID. Returns
	// [ErrVaultNotFound] when the vault has not been provisioned.
	GetVault(ctx context.Context, userID int64) (models.VaultRecord, error)
}

// CredentialRepository persists credential rows. The masked columns are
// written alongside the encrypted payload so listing never needs the DEK.
type CredentialRepository interface {
	// ListCredentials returns the masked rows of one user, newest first.
	ListCredentials(ctx context.Context, userID int64) ([]models.CredentialMasked, error)

	// GetCredential fetches one full row including the encrypted payload.
	// Returns [ErrCredentialNotFound] when no row matches.
	GetCredential(ctx context.Context, userID int64, id string) (models.CredentialRecord, error)

	// CreateCredential inserts a new row. Returns [ErrCredentialAlreadyExists]
	// when the id is already taken.
	CreateCredential(ctx context.Context, record models.CredentialRecord) error

	// UpdateCredential replaces the masked columns and payload of an
	// existing row. Returns [ErrCredentialNotFound] when no row matches.
	UpdateCredential(ctx context.Context, record models.CredentialRecord) error

	// DeleteCredential removes a row. Returns [ErrCredentialNotFound] when
	// no row matches.
	DeleteCredential(ctx context.Context, userID int64, id string) error
}
