// SPDX-License-Identifier: Apache-2.0

// Package adapter provides the transport layer for communicating with the
// remote vault service.
//
// The primary abstraction is [VaultAdapter], which decouples the client
// services from the wire protocol. The package ships an HTTP/REST
// implementation ([NewHTTPVaultAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrMasterPassword] for 403, [ErrUnauthorized]
// for 401).
package adapter

import (
	"context"

	"github.com/opsboard/credvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_adapter_mock.go -package=mock

// VaultAdapter defines transport-agnostic communication with the remote
// vault service. Implementations are responsible for serialisation, bearer
// token management, and mapping transport-level errors to the sentinel
// values defined in this package.
//
// None of the methods cache anything: every call is a round trip. Caching
// and session bookkeeping belong to the service layer.
type VaultAdapter interface {
	// SetToken stores the dashboard-session bearer token attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if none has been set.
	Token() string

	// Register creates a dashboard account. On success the bearer token
	// returned by the server is stored via SetToken.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the dashboard account. On success the bearer token
	// returned by the server is stored via SetToken.
	Login(ctx context.Context, user models.User) (models.User, error)

	// Status queries the vault provisioning/lock state. Idempotent, safe to
	// call in any state, never returns decrypted data.
	Status(ctx context.Context) (models.VaultStatusResponse, error)

	// Setup provisions the vault with a master password and returns the
	// resulting state. Server-side validation mirrors the client's.
	Setup(ctx context.Context, req models.VaultSetupRequest) (models.VaultStatusResponse, error)

	// Unlock opens a locked vault. A wrong master password maps to
	// [ErrMasterPassword]; the vault stays locked.
	Unlock(ctx context.Context, req models.VaultUnlockRequest) (models.VaultStatusResponse, error)

	// Lock relocks the vault, discarding the server-side session key.
	Lock(ctx context.Context) (models.VaultStatusResponse, error)

	// ListCredentials returns the masked records for the unlocked vault.
	ListCredentials(ctx context.Context) ([]models.CredentialMasked, error)

	// GetCredential fetches the full decrypted record for id.
	GetCredential(ctx context.Context, id string) (models.CredentialDecrypted, error)

	// GetCredentialField fetches a single decrypted field value for id
	// without materialising the whole record.
	GetCredentialField(ctx context.Context, id string, field models.CredentialField) (string, error)

	// CreateCredential stores a new credential. The plaintext payload is
	// encrypted by the service; the client never encrypts locally.
	CreateCredential(ctx context.Context, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error)

	// UpdateCredential replaces the payload of an existing credential.
	UpdateCredential(ctx context.Context, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error)

	// DeleteCredential removes the credential with the given id.
	DeleteCredential(ctx context.Context, id string) error
}
