// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/opsboard/credvault/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

// VaultController is the client-side owner of the vault session. It tracks
// the three-state lifecycle (unprovisioned / locked / unlocked), mediates
// every call to the remote vault service, and owns the session-scoped
// credential cache and reveal state.
//
// The controller enforces the central invariant: when the session status is
// anything other than unlocked, no decrypted credential data exists anywhere
// in client memory. The cache and reveal tracker are constructed on
// unlock/setup and destroyed on lock, so the purge is structural rather than
// a manual sweep.
type VaultController interface {
	// Session returns the current local session state without any network
	// call.
	Session() models.VaultSession

	// QueryStatus asks the remote service for the vault state and reconciles
	// the local session with it. Idempotent and safe in any state; never
	// returns decrypted data. If the remote reports the vault is no longer
	// unlocked, local decrypted state is purged as part of reconciliation.
	QueryStatus(ctx context.Context) (models.VaultSession, error)

	// Setup provisions the vault with a master password. Password shorter
	// than eight characters fails with [ErrPasswordTooShort] and a mismatched
	// confirmation with [ErrPasswordMismatch], both before any network call.
	// On success the session transitions unprovisioned -> unlocked.
	Setup(ctx context.Context, password, confirm string) (models.VaultSession, error)

	// Unlock opens a locked vault. Valid only from the locked state. A wrong
	// master password surfaces as [ErrInvalidMasterPassword] and the session
	// stays locked; nothing beyond the boolean failure is exposed.
	Unlock(ctx context.Context, password string) (models.VaultSession, error)

	// Lock relocks the vault. Valid only from the unlocked state. The
	// credential cache, reveal state, and masked listing are discarded in
	// full before the transition is observable; in-flight fetch responses
	// arriving afterwards are discarded, not cached.
	Lock(ctx context.Context) (models.VaultSession, error)

	// Refresh fetches the masked listing for the unlocked session and
	// replaces the local copy.
	Refresh(ctx context.Context) ([]models.CredentialMasked, error)

	// Credentials returns the masked listing loaded by the last Refresh.
	Credentials() []models.CredentialMasked

	// Get fetches the full decrypted record for id and caches it,
	// overwriting any stale entry. The fetched value, not a stale copy, is
	// returned for rendering.
	Get(ctx context.Context, id string) (models.CredentialDecrypted, error)

	// ToggleReveal flips the visibility of a secret field. Revealing a field
	// whose record is not cached triggers exactly one fetch; revealing again
	// after hiding reuses the cached value for the rest of the unlocked
	// session. Hiding never evicts the cache entry. Returns the new
	// visibility.
	ToggleReveal(ctx context.Context, id, field string) (bool, error)

	// Revealed reports whether the given field is currently visible.
	Revealed(id, field string) bool

	// FieldValue returns the cached decrypted value for a revealable field.
	// The second result is false when the record is not cached.
	FieldValue(id, field string) (string, bool)

	// Copy resolves the decrypted value of a built-in field — from the cache
	// when the full record was already fetched, otherwise via the dedicated
	// single-field endpoint — and marks copy feedback for it. The caller
	// writes the returned value to the system clipboard.
	Copy(ctx context.Context, id string, field models.CredentialField) (string, error)

	// CopyFeedback returns the field key of the most recent copy while its
	// feedback window (~2s) is still open. A repeated copy restarts the
	// window.
	CopyFeedback() (string, bool)

	// Create validates and stores a new credential, assigning it a
	// client-generated id, and appends its masked form to the listing.
	Create(ctx context.Context, req models.CredentialWriteRequest) (models.CredentialMasked, error)

	// Update replaces the payload of an existing credential. The stale cache
	// entry and reveal state for the id are dropped.
	Update(ctx context.Context, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error)

	// Delete removes a credential together with its cached and reveal state.
	Delete(ctx context.Context, id string) error

	// Register creates a dashboard account and opens an app session.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the dashboard account and opens an app session.
	Login(ctx context.Context, user models.User) (models.User, error)
}
