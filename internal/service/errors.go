package service

import "errors"

// Client-side vault session errors.
var (
	// ErrPasswordTooShort is returned by Setup before any network call when
	// the master password has fewer than eight characters.
	ErrPasswordTooShort = errors.New("master password must be at least 8 characters")

	// ErrPasswordMismatch is returned by Setup before any network call when
	// the confirmation does not match the password.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidMasterPassword is returned by Unlock when the remote vault
	// rejects the master password. The session stays locked.
	ErrInvalidMasterPassword = errors.New("invalid master password")

	// ErrVaultLocked is returned when an operation requires an unlocked
	// vault, or when a late fetch response is discarded because the vault
	// locked while the request was in flight.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrVaultNotLocked is returned by Unlock outside the locked state.
	ErrVaultNotLocked = errors.New("vault is not locked")

	// ErrVaultAlreadySetup is returned by Setup when the vault is already
	// provisioned.
	ErrVaultAlreadySetup = errors.New("vault is already set up")

	// ErrUnknownField is returned for a reveal/copy key that does not
	// address a known secret-bearing field.
	ErrUnknownField = errors.New("unknown credential field")
)

// Server-side service errors.
var (
	// ErrInvalidDataProvided is returned when a request fails validation
	// before touching storage.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned on a dashboard login with a bad password.
	ErrWrongPassword = errors.New("wrong login or password")

	// ErrTokenIsExpired is returned when a dashboard session token is past
	// its expiry.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrMasterPasswordRejected is returned by the server vault service when
	// the supplied master password does not verify against the stored
	// verifier.
	ErrMasterPasswordRejected = errors.New("master password rejected")

	// ErrVaultNotSetup is returned for vault operations before provisioning.
	ErrVaultNotSetup = errors.New("vault is not set up")

	// ErrVaultSessionLocked is returned by the server credential service
	// when no unlocked vault session exists for the user.
	ErrVaultSessionLocked = errors.New("vault session is locked")

	// ErrTokenCreationFailed is returned when a JWT cannot be issued.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the normalised result of any JWT
	// validation failure, so callers never inspect low-level jwt errors.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
