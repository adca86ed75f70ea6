// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"crypto/hmac"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/opsboard/credvault/internal/crypto"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/store"
	"github.com/opsboard/credvault/models"
)

// vaultSessionEntry holds the plaintext DEK of one unlocked vault together
// with the last time it was used, so idle sessions can be reaped.
type vaultSessionEntry struct {
	dek      []byte
	lastUsed time.Time
}

// vaultService is the concrete implementation of [VaultService]. Key
// material at rest lives in the VaultRepository; the plaintext DEK of an
// unlocked vault lives only in the sessions map and is zeroed on lock.
type vaultService struct {
	vaultRepository store.VaultRepository
	keychain        crypto.KeyChainService
	logger          *logger.Logger

	// now is a clock hook for tests.
	now func() time.Time

	mu       sync.Mutex
	sessions map[int64]*vaultSessionEntry
}

// NewVaultService constructs a [VaultService] with an empty session table.
func NewVaultService(vaultRepository store.VaultRepository, keychain crypto.KeyChainService, logger *logger.Logger) VaultService {
	return &vaultService{
		vaultRepository: vaultRepository,
		keychain:        keychain,
		logger:          logger,
		now:             time.Now,
		sessions:        make(map[int64]*vaultSessionEntry),
	}
}

// Status reports the provisioning and lock state for userID.
func (s *vaultService) Status(ctx context.Context, userID int64) (models.VaultStatusResponse, error) {
	isSetup, err := s.isProvisioned(ctx, userID)
	if err != nil {
		return models.VaultStatusResponse{}, err
	}

	return models.VaultStatusResponse{
		IsSetup:    isSetup,
		IsUnlocked: isSetup && s.hasSession(userID),
	}, nil
}

// Setup provisions a vault for userID and opens an unlocked session.
//
// The master password pair is validated again here even though the client
// checks it first: the server cannot trust the client to have done so.
// Returns [ErrInvalidDataProvided] on a bad pair and the repository's
// [store.ErrVaultAlreadyExists] when a vault is already provisioned.
func (s *vaultService) Setup(ctx context.Context, userID int64, req models.VaultSetupRequest) (models.VaultStatusResponse, error) {
	log := logger.FromContext(ctx)

	if utf8.RuneCountInString(req.Password) < minMasterPasswordLen {
		return models.VaultStatusResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrPasswordTooShort)
	}
	if req.Password != req.Confirm {
		return models.VaultStatusResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrPasswordMismatch)
	}

	salt, err := s.keychain.GenerateSalt()
	if err != nil {
		return models.VaultStatusResponse{}, fmt.Errorf("generating kdf salt: %w", err)
	}
	dek, err := s.keychain.GenerateDEK()
	if err != nil {
		return models.VaultStatusResponse{}, fmt.Errorf("generating dek: %w", err)
	}

	kek := s.keychain.DeriveKEK(req.Password, salt)
	wrapped, err := s.keychain.WrapDEK(dek, kek)
	if err != nil {
		return models.VaultStatusResponse{}, fmt.Errorf("wrapping dek: %w", err)
	}

	record := models.VaultRecord{
		UserID:     userID,
		KDFSalt:    salt,
		WrappedDEK: wrapped,
		Verifier:   s.keychain.Verifier(kek),
	}
	if _, err := s.vaultRepository.CreateVault(ctx, record); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("vault creation ended with error")
		return models.VaultStatusResponse{}, fmt.Errorf("vault creation ended with error: %w", err)
	}

	s.openSession(userID, dek)
	log.Info().Int64("user_id", userID).Msg("vault provisioned and unlocked")

	return models.VaultStatusResponse{IsSetup: true, IsUnlocked: true}, nil
}

// Unlock verifies the master password against the stored verifier and, on
// success, unwraps the DEK into a fresh session.
//
// Returns [ErrVaultNotSetup] before provisioning and
// [ErrMasterPasswordRejected] on a bad password; the vault stays locked in
// both cases. A repeated unlock of an already-open session succeeds and
// replaces the session entry.
func (s *vaultService) Unlock(ctx context.Context, userID int64, req models.VaultUnlockRequest) (models.VaultStatusResponse, error) {
	log := logger.FromContext(ctx)

	record, err := s.vaultRepository.GetVault(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrVaultNotFound) {
			return models.VaultStatusResponse{}, ErrVaultNotSetup
		}
		return models.VaultStatusResponse{}, fmt.Errorf("vault lookup ended with error: %w", err)
	}

	kek := s.keychain.DeriveKEK(req.Password, record.KDFSalt)
	if !hmac.Equal(s.keychain.Verifier(kek), record.Verifier) {
		log.Warn().Int64("user_id", userID).Msg("master password rejected")
		return models.VaultStatusResponse{}, ErrMasterPasswordRejected
	}

	dek, err := s.keychain.UnwrapDEK(record.WrappedDEK, kek)
	if err != nil {
		// Verifier matched but the wrapped blob did not authenticate:
		// stored key material is damaged, not a wrong password.
		log.Err(err).Int64("user_id", userID).Msg("dek unwrap failed")
		return models.VaultStatusResponse{}, fmt.Errorf("dek unwrap failed: %w", err)
	}

	s.openSession(userID, dek)
	log.Info().Int64("user_id", userID).Msg("vault unlocked")

	return models.VaultStatusResponse{IsSetup: true, IsUnlocked: true}, nil
}

// Lock discards the session DEK for userID. Locking an already-locked or
// unprovisioned vault is not an error.
func (s *vaultService) Lock(ctx context.Context, userID int64) (models.VaultStatusResponse, error) {
	s.closeSession(userID)

	isSetup, err := s.isProvisioned(ctx, userID)
	if err != nil {
		return models.VaultStatusResponse{}, err
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("vault locked")
	return models.VaultStatusResponse{IsSetup: isSetup, IsUnlocked: false}, nil
}

// SessionDEK returns a copy of the DEK of an unlocked session and refreshes
// its idle timer. Returns [ErrVaultSessionLocked] when no session exists.
func (s *vaultService) SessionDEK(userID int64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[userID]
	if !ok {
		return nil, ErrVaultSessionLocked
	}

	entry.lastUsed = s.now()

	dek := make([]byte, len(entry.dek))
	copy(dek, entry.dek)
	return dek, nil
}

// ReapIdleSessions locks every session whose last use is older than maxIdle
// and reports how many were reaped.
func (s *vaultService) ReapIdleSessions(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	reaped := 0
	for userID, entry := range s.sessions {
		if entry.lastUsed.Before(cutoff) {
			zeroBytes(entry.dek)
			delete(s.sessions, userID)
			reaped++
		}
	}

	if reaped > 0 {
		s.logger.Info().Int("sessions", reaped).Msg("reaped idle vault sessions")
	}
	return reaped
}

func (s *vaultService) isProvisioned(ctx context.Context, userID int64) (bool, error) {
	_, err := s.vaultRepository.GetVault(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrVaultNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("vault lookup ended with error: %w", err)
	}
}

func (s *vaultService) hasSession(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[userID]
	return ok
}

func (s *vaultService) openSession(userID int64, dek []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.sessions[userID]; ok {
		zeroBytes(old.dek)
	}
	s.sessions[userID] = &vaultSessionEntry{dek: dek, lastUsed: s.now()}
}

func (s *vaultService) closeSession(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.sessions[userID]; ok {
		zeroBytes(entry.dek)
		delete(s.sessions, userID)
	}
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
