package service

import (
	"context"
	"time"

	"github.com/opsboard/credvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// AuthService owns dashboard account registration, login, and the JWT
// session lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService owns the server-side vault lifecycle: provisioning, unlock
// and lock, and the in-memory map of unlocked session keys. The plaintext
// DEK exists only inside this service, only between Unlock and Lock.
type VaultService interface {
	// Status reports the provisioning/lock state for userID.
	Status(ctx context.Context, userID int64) (models.VaultStatusResponse, error)

	// Setup provisions a vault and opens an unlocked session for it.
	Setup(ctx context.Context, userID int64, req models.VaultSetupRequest) (models.VaultStatusResponse, error)

	// Unlock verifies the master password and opens an unlocked session.
	// Returns [ErrMasterPasswordRejected] on a bad password; the vault
	// stays locked.
	Unlock(ctx context.Context, userID int64, req models.VaultUnlockRequest) (models.VaultStatusResponse, error)

	// Lock discards the session key for userID.
	Lock(ctx context.Context, userID int64) (models.VaultStatusResponse, error)

	// SessionDEK returns the DEK of an unlocked session and marks it as
	// recently used. Returns [ErrVaultSessionLocked] when none exists.
	SessionDEK(userID int64) ([]byte, error)

	// ReapIdleSessions locks every session idle for longer than maxIdle and
	// reports how many were reaped.
	ReapIdleSessions(maxIdle time.Duration) int
}

// CredentialService owns credential reads and writes. It encrypts payloads
// with the session DEK on the way in and decrypts on explicit fetches only;
// listings are served from the plain masked columns.
type CredentialService interface {
	List(ctx context.Context, userID int64) ([]models.CredentialMasked, error)
	Get(ctx context.Context, userID int64, id string) (models.CredentialDecrypted, error)
	GetField(ctx context.Context, userID int64, id string, field models.CredentialField) (string, error)
	Create(ctx context.Context, userID int64, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error)
	Update(ctx context.Context, userID int64, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error)
	Delete(ctx context.Context, userID int64, id string) error
}
