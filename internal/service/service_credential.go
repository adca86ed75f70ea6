// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/opsboard/credvault/internal/crypto"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/store"
	"github.com/opsboard/credvault/models"
)

// credentialService is the concrete implementation of [CredentialService].
// Every write encrypts the full plaintext record into the payload blob and
// derives the masked columns from it; every explicit read decrypts with the
// session DEK. Listing reads the masked columns only.
type credentialService struct {
	credentialRepository store.CredentialRepository
	vaultService         VaultService
	keychain             crypto.KeyChainService
	logger               *logger.Logger

	now func() time.Time
}

// NewCredentialService constructs a [CredentialService] on top of the given
// repository, vault session source, and keychain.
func NewCredentialService(credentialRepository store.CredentialRepository, vaultService VaultService, keychain crypto.KeyChainService, logger *logger.Logger) CredentialService {
	return &credentialService{
		credentialRepository: credentialRepository,
		vaultService:         vaultService,
		keychain:             keychain,
		logger:               logger,
		now:                  time.Now,
	}
}

// List returns the masked rows of one user. No session DEK is required:
// the masked columns are stored in plain form and the payload is never read.
func (s *credentialService) List(ctx context.Context, userID int64) ([]models.CredentialMasked, error) {
	list, err := s.credentialRepository.ListCredentials(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing credentials ended with error: %w", err)
	}

	return list, nil
}

// Get fetches one credential and decrypts its payload with the session DEK.
// Returns [ErrVaultSessionLocked] when no unlocked session exists.
func (s *credentialService) Get(ctx context.Context, userID int64, id string) (models.CredentialDecrypted, error) {
	dek, err := s.vaultService.SessionDEK(userID)
	if err != nil {
		return models.CredentialDecrypted{}, err
	}
	defer zeroBytes(dek)

	record, err := s.credentialRepository.GetCredential(ctx, userID, id)
	if err != nil {
		return models.CredentialDecrypted{}, fmt.Errorf("credential lookup ended with error: %w", err)
	}

	var decrypted models.CredentialDecrypted
	if err := s.keychain.DecryptPayload(record.Payload, dek, &decrypted); err != nil {
		logger.FromContext(ctx).Err(err).Str("credential_id", id).Msg("payload decryption failed")
		return models.CredentialDecrypted{}, fmt.Errorf("payload decryption failed: %w", err)
	}

	decrypted.ID = record.ID
	decrypted.UpdatedAt = record.UpdatedAt
	return decrypted, nil
}

// GetField decrypts one credential and returns a single built-in field, so
// a copy action never ships the full plaintext record over the wire.
func (s *credentialService) GetField(ctx context.Context, userID int64, id string, field models.CredentialField) (string, error) {
	if !field.Valid() {
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidDataProvided, field)
	}

	decrypted, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}

	switch field {
	case models.CredentialUsername:
		return decrypted.Username, nil
	case models.CredentialPassword:
		return decrypted.Password, nil
	default:
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidDataProvided, field)
	}
}

// Create validates, encrypts, and stores a new credential under the
// client-supplied id, then returns its masked view.
func (s *credentialService) Create(ctx context.Context, userID int64, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error) {
	record, err := s.buildRecord(userID, id, req)
	if err != nil {
		return models.CredentialMasked{}, err
	}
	record.CreatedAt = record.UpdatedAt

	if err := s.credentialRepository.CreateCredential(ctx, record); err != nil {
		logger.FromContext(ctx).Err(err).Str("credential_id", id).Msg("credential creation ended with error")
		return models.CredentialMasked{}, fmt.Errorf("credential creation ended with error: %w", err)
	}

	return record.Masked(), nil
}

// Update validates, re-encrypts, and replaces an existing credential, then
// returns its masked view.
func (s *credentialService) Update(ctx context.Context, userID int64, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error) {
	record, err := s.buildRecord(userID, id, req)
	if err != nil {
		return models.CredentialMasked{}, err
	}

	if err := s.credentialRepository.UpdateCredential(ctx, record); err != nil {
		logger.FromContext(ctx).Err(err).Str("credential_id", id).Msg("credential update ended with error")
		return models.CredentialMasked{}, fmt.Errorf("credential update ended with error: %w", err)
	}

	return record.Masked(), nil
}

// Delete removes a credential row. The vault must be unlocked even though no
// decryption happens, so a locked dashboard cannot mutate the vault.
func (s *credentialService) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := s.vaultService.SessionDEK(userID); err != nil {
		return err
	}

	if err := s.credentialRepository.DeleteCredential(ctx, userID, id); err != nil {
		return fmt.Errorf("credential deletion ended with error: %w", err)
	}

	return nil
}

// buildRecord validates the write request, encrypts the plaintext with the
// session DEK, and derives the masked columns. The presence flags are
// computed here, at write time, from the same plaintext that goes into the
// payload, so the columns can never disagree with the blob.
func (s *credentialService) buildRecord(userID int64, id string, req models.CredentialWriteRequest) (models.CredentialRecord, error) {
	dek, err := s.vaultService.SessionDEK(userID)
	if err != nil {
		return models.CredentialRecord{}, err
	}
	defer zeroBytes(dek)

	decrypted := req.Decrypted(id)
	decrypted.UpdatedAt = s.now().UTC()
	if err := decrypted.Validate(); err != nil {
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	payload, err := s.keychain.EncryptPayload(decrypted, dek)
	if err != nil {
		return models.CredentialRecord{}, fmt.Errorf("payload encryption failed: %w", err)
	}

	masked := decrypted.Masked()
	return models.CredentialRecord{
		ID:               id,
		UserID:           userID,
		Name:             masked.Name,
		Category:         masked.Category,
		ServiceURL:       masked.ServiceURL,
		HasUsername:      masked.HasUsername,
		HasPassword:      masked.HasPassword,
		HasNotes:         masked.HasNotes,
		HasTOTP:          masked.HasTOTP,
		CustomFieldCount: masked.CustomFieldCount,
		Payload:          payload,
		UpdatedAt:        decrypted.UpdatedAt,
	}, nil
}
