// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/opsboard/credvault/internal/adapter"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/utils"
	"github.com/opsboard/credvault/models"
)

const minMasterPasswordLen = 8

type vaultController struct {
	adapter adapter.VaultAdapter
	idgen   *utils.UUIDGenerator
	logger  *logger.Logger
	now     func() time.Time

	mu       sync.Mutex
	session  models.VaultSession
	listing  []models.CredentialMasked
	cache    *credentialCache
	reveals  *revealTracker
	feedback copyFeedback
}

// NewVaultController constructs the client-side session controller. The
// initial state is locked-out-of-everything until QueryStatus reconciles
// with the remote service.
func NewVaultController(a adapter.VaultAdapter, log *logger.Logger) VaultController {
	return &vaultController{
		adapter: a,
		idgen:   utils.NewUUIDGenerator(),
		logger:  log,
		now:     time.Now,
		session: models.VaultSession{Status: models.VaultUnprovisioned},
	}
}

// Session implements [VaultController].
func (v *vaultController) Session() models.VaultSession {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session
}

// QueryStatus implements [VaultController]. If the remote reports the vault
// is no longer unlocked (for example the server-side session expired), local
// decrypted state is purged during reconciliation.
func (v *vaultController) QueryStatus(ctx context.Context) (models.VaultSession, error) {
	resp, err := v.adapter.Status(ctx)
	if err != nil {
		return v.Session(), mapVaultAdapterError(err)
	}

	remote := resp.Session()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.session.Status == models.VaultUnlocked && remote.Status != models.VaultUnlocked {
		v.purgeLocked()
	}
	if remote.Status == models.VaultUnlocked && v.cache == nil {
		// A server-side session survived a client restart.
		v.openSessionScope()
	}
	v.session = remote
	return v.session, nil
}

// Setup implements [VaultController]. Both validation failures are detected
// locally, before any network call, and leave the session untouched.
func (v *vaultController) Setup(ctx context.Context, password, confirm string) (models.VaultSession, error) {
	// Rune count, not byte count: multi-byte passwords must not slip past
	// the minimum length.
	if utf8.RuneCountInString(password) < minMasterPasswordLen {
		return v.Session(), ErrPasswordTooShort
	}
	if password != confirm {
		return v.Session(), ErrPasswordMismatch
	}

	v.mu.Lock()
	if v.session.Status != models.VaultUnprovisioned {
		defer v.mu.Unlock()
		return v.session, ErrVaultAlreadySetup
	}
	v.mu.Unlock()

	resp, err := v.adapter.Setup(ctx, models.VaultSetupRequest{Password: password, Confirm: confirm})
	if err != nil {
		return v.Session(), mapVaultAdapterError(err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.session = resp.Session()
	if v.session.Status == models.VaultUnlocked {
		v.openSessionScope()
	}
	v.logger.Info().Str("status", string(v.session.Status)).Msg("vault set up")
	return v.session, nil
}

// Unlock implements [VaultController].
func (v *vaultController) Unlock(ctx context.Context, password string) (models.VaultSession, error) {
	v.mu.Lock()
	if v.session.Status != models.VaultLocked {
		defer v.mu.Unlock()
		return v.session, ErrVaultNotLocked
	}
	v.mu.Unlock()

	resp, err := v.adapter.Unlock(ctx, models.VaultUnlockRequest{Password: password})
	if err != nil {
		// The session stays locked; only the boolean failure is surfaced.
		return v.Session(), mapVaultAdapterError(err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.session = resp.Session()
	if v.session.Status == models.VaultUnlocked {
		v.openSessionScope()
	}
	v.logger.Info().Msg("vault unlocked")
	return v.session, nil
}

// Lock implements [VaultController]. The purge happens before the network
// call: whatever the remote outcome, no decrypted value survives Lock
// returning. The remote call is best-effort — the server relocks idle
// sessions on its own.
func (v *vaultController) Lock(ctx context.Context) (models.VaultSession, error) {
	v.mu.Lock()
	if v.session.Status != models.VaultUnlocked {
		defer v.mu.Unlock()
		return v.session, ErrVaultLocked
	}
	v.purgeLocked()
	v.session = models.VaultSession{Status: models.VaultLocked}
	v.mu.Unlock()

	if _, err := v.adapter.Lock(ctx); err != nil {
		v.logger.Warn().Err(err).Msg("remote lock failed; local session is locked anyway")
	}
	v.logger.Info().Msg("vault locked")
	return v.Session(), nil
}

// purgeLocked discards all decrypted and derived state. Callers must hold
// v.mu.
func (v *vaultController) purgeLocked() {
	if v.cache != nil {
		v.cache.PurgeAll()
	}
	v.cache = nil
	v.reveals = nil
	v.listing = nil
	v.feedback = copyFeedback{}
}

// openSessionScope constructs the session-scoped objects for a freshly
// unlocked vault. Callers must hold v.mu.
func (v *vaultController) openSessionScope() {
	v.cache = newCredentialCache(v.adapter)
	v.reveals = newRevealTracker()
	v.listing = nil
	v.feedback = copyFeedback{}
}

// Refresh implements [VaultController].
func (v *vaultController) Refresh(ctx context.Context) ([]models.CredentialMasked, error) {
	if v.Session().Status != models.VaultUnlocked {
		return nil, ErrVaultLocked
	}

	list, err := v.adapter.ListCredentials(ctx)
	if err != nil {
		return nil, mapVaultAdapterError(err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.session.Status != models.VaultUnlocked {
		// Locked while the request was in flight: the listing belongs to the
		// dead session and is discarded.
		return nil, ErrVaultLocked
	}
	v.listing = slices.Clone(list)
	return slices.Clone(list), nil
}

// Credentials implements [VaultController].
func (v *vaultController) Credentials() []models.CredentialMasked {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.listing)
}

// Get implements [VaultController].
func (v *vaultController) Get(ctx context.Context, id string) (models.CredentialDecrypted, error) {
	cache, err := v.sessionCache()
	if err != nil {
		return models.CredentialDecrypted{}, err
	}
	return cache.FetchAndCache(ctx, id)
}

// ToggleReveal implements [VaultController].
func (v *vaultController) ToggleReveal(ctx context.Context, id, field string) (bool, error) {
	v.mu.Lock()
	cache, reveals := v.cache, v.reveals
	v.mu.Unlock()
	if cache == nil || reveals == nil {
		return false, ErrVaultLocked
	}

	if reveals.isVisible(id, field) {
		reveals.set(id, field, false)
		return false, nil
	}

	cred, ok := cache.Get(id)
	if !ok {
		var err error
		cred, err = cache.FetchAndCache(ctx, id)
		if err != nil {
			return false, err
		}
	}
	if _, known := fieldValueFrom(cred, field); !known {
		return false, ErrUnknownField
	}

	reveals.set(id, field, true)
	return true, nil
}

// Revealed implements [VaultController].
func (v *vaultController) Revealed(id, field string) bool {
	v.mu.Lock()
	reveals := v.reveals
	v.mu.Unlock()
	if reveals == nil {
		return false
	}
	return reveals.isVisible(id, field)
}

// FieldValue implements [VaultController].
func (v *vaultController) FieldValue(id, field string) (string, bool) {
	v.mu.Lock()
	cache := v.cache
	v.mu.Unlock()
	if cache == nil {
		return "", false
	}

	cred, ok := cache.Get(id)
	if !ok {
		return "", false
	}
	return fieldValueFrom(cred, field)
}

// Copy implements [VaultController].
func (v *vaultController) Copy(ctx context.Context, id string, field models.CredentialField) (string, error) {
	cache, err := v.sessionCache()
	if err != nil {
		return "", err
	}

	value, err := cache.CopyField(ctx, id, field)
	if err != nil {
		return "", err
	}

	v.mu.Lock()
	v.feedback = copyFeedback{
		fieldKey:  fmt.Sprintf("%s/%s", id, field),
		expiresAt: v.now().Add(copyFeedbackTTL),
	}
	v.mu.Unlock()

	return value, nil
}

// CopyFeedback implements [VaultController].
func (v *vaultController) CopyFeedback() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.feedback.fieldKey == "" || v.now().After(v.feedback.expiresAt) {
		v.feedback = copyFeedback{}
		return "", false
	}
	return v.feedback.fieldKey, true
}

// Create implements [VaultController].
func (v *vaultController) Create(ctx context.Context, req models.CredentialWriteRequest) (models.CredentialMasked, error) {
	if v.Session().Status != models.VaultUnlocked {
		return models.CredentialMasked{}, ErrVaultLocked
	}

	id := v.idgen.Generate()
	if err := req.Decrypted(id).Validate(); err != nil {
		return models.CredentialMasked{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	masked, err := v.adapter.CreateCredential(ctx, id, req)
	if err != nil {
		return models.CredentialMasked{}, mapVaultAdapterError(err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.session.Status == models.VaultUnlocked {
		v.listing = append(v.listing, masked)
	}
	return masked, nil
}

// Update implements [VaultController].
func (v *vaultController) Update(ctx context.Context, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error) {
	cache, err := v.sessionCache()
	if err != nil {
		return models.CredentialMasked{}, err
	}

	if err := req.Decrypted(id).Validate(); err != nil {
		return models.CredentialMasked{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	masked, err := v.adapter.UpdateCredential(ctx, id, req)
	if err != nil {
		return models.CredentialMasked{}, mapVaultAdapterError(err)
	}

	// The cached decrypted payload is stale now; visibility requires a
	// cached value, so the reveal flags go with it.
	cache.Evict(id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.reveals != nil {
		v.reveals.clearCredential(id)
	}
	for i := range v.listing {
		if v.listing[i].ID == id {
			v.listing[i] = masked
			break
		}
	}
	return masked, nil
}

// Delete implements [VaultController].
func (v *vaultController) Delete(ctx context.Context, id string) error {
	cache, err := v.sessionCache()
	if err != nil {
		return err
	}

	if err := v.adapter.DeleteCredential(ctx, id); err != nil {
		return mapVaultAdapterError(err)
	}

	cache.Evict(id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.reveals != nil {
		v.reveals.clearCredential(id)
	}
	v.listing = slices.DeleteFunc(v.listing, func(c models.CredentialMasked) bool {
		return c.ID == id
	})
	return nil
}

// Register implements [VaultController].
func (v *vaultController) Register(ctx context.Context, user models.User) (models.User, error) {
	registered, err := v.adapter.Register(ctx, user)
	if err != nil {
		return models.User{}, mapVaultAdapterError(err)
	}
	return registered, nil
}

// Login implements [VaultController].
func (v *vaultController) Login(ctx context.Context, user models.User) (models.User, error) {
	logged, err := v.adapter.Login(ctx, user)
	if err != nil {
		return models.User{}, mapVaultAdapterError(err)
	}
	return logged, nil
}

// sessionCache returns the cache of the current unlocked session, or
// [ErrVaultLocked] when there is none.
func (v *vaultController) sessionCache() (*credentialCache, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.session.Status != models.VaultUnlocked || v.cache == nil {
		return nil, ErrVaultLocked
	}
	return v.cache, nil
}
