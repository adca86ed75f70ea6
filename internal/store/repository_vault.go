// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/models"
)

// vaultRepository is the SQL-backed implementation of [VaultRepository]. One
// row per user; the row holds only sealed key material.
type vaultRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] backed by the provided
// database connection and logger.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		db:     db,
		logger: logger,
	}
}

// CreateVault stores freshly provisioned key material. A primary-key
// collision on user_id maps to [ErrVaultAlreadyExists].
func (r *vaultRepository) CreateVault(ctx context.Context, vault models.VaultRecord) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	if vault.CreatedAt.IsZero() {
		vault.CreatedAt = now
	}
	vault.UpdatedAt = now

	query, args, err := buildInsertVaultQuery(r.db.builder(), vault)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.CreateVault").Msg("failed to build query")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.execWithRetry(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return models.VaultRecord{}, ErrVaultAlreadyExists
		}
		log.Err(err).Str("func", "*vaultRepository.CreateVault").Int64("user_id", vault.UserID).Msg("failed to insert vault")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return vault, nil
}

// GetVault fetches the key material of userID. Returns [ErrVaultNotFound]
// when the vault has not been provisioned.
func (r *vaultRepository) GetVault(ctx context.Context, userID int64) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetVaultQuery(r.db.builder(), userID)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.GetVault").Msg("failed to build query")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var vault models.VaultRecord
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&vault.UserID, &vault.KDFSalt, &vault.WrappedDEK, &vault.Verifier, &vault.CreatedAt, &vault.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultRecord{}, ErrVaultNotFound
		}
		log.Err(err).Str("func", "*vaultRepository.GetVault").Int64("user_id", userID).Msg("failed to scan vault row")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return vault, nil
}
