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

// credentialRepository is the SQL-backed implementation of
// [CredentialRepository]. Masked columns are stored in plain form next to
// the encrypted payload, so listing reads never touch key material.
type credentialRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		logger: logger,
	}
}

// ListCredentials returns the masked rows of userID, most recently updated
// first. The payload column is never selected here.
func (r *credentialRepository) ListCredentials(ctx context.Context, userID int64) ([]models.CredentialMasked, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCredentialsQuery(r.db.builder(), userID)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.ListCredentials").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.ListCredentials").Int64("user_id", userID).Msg("failed to execute listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.CredentialMasked, 0, 32)
	for rows.Next() {
		var m models.CredentialMasked
		scanErr := rows.Scan(
			&m.ID, &m.Name, &m.Category, &m.ServiceURL,
			&m.HasUsername, &m.HasPassword, &m.HasNotes, &m.HasTOTP,
			&m.CustomFieldCount, &m.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*credentialRepository.ListCredentials").Int64("user_id", userID).Msg("failed to scan masked row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		m.HasCustomFields = m.CustomFieldCount > 0
		results = append(results, m)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*credentialRepository.ListCredentials").Int64("user_id", userID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// GetCredential fetches one full row including the encrypted payload.
func (r *credentialRepository) GetCredential(ctx context.Context, userID int64, id string) (models.CredentialRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetCredentialQuery(r.db.builder(), userID, id)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.GetCredential").Msg("failed to build query")
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rec models.CredentialRecord
	row := r.db.QueryRowContext(ctx, query, args...)
	scanErr := row.Scan(
		&rec.ID, &rec.UserID, &rec.Name, &rec.Category, &rec.ServiceURL,
		&rec.HasUsername, &rec.HasPassword, &rec.HasNotes, &rec.HasTOTP,
		&rec.CustomFieldCount, &rec.Payload, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.CredentialRecord{}, ErrCredentialNotFound
		}
		log.Err(scanErr).Str("func", "*credentialRepository.GetCredential").Str("credential_id", id).Msg("failed to scan credential row")
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return rec, nil
}

// CreateCredential inserts a new row. The id is client-generated, so an id
// collision maps to [ErrCredentialAlreadyExists] and lets the caller treat
// a retried create as idempotent.
func (r *credentialRepository) CreateCredential(ctx context.Context, record models.CredentialRecord) error {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = now
	}

	query, args, err := buildInsertCredentialQuery(r.db.builder(), record)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.CreateCredential").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.execWithRetry(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrCredentialAlreadyExists
		}
		log.Err(err).Str("func", "*credentialRepository.CreateCredential").Str("credential_id", record.ID).Msg("failed to insert credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// UpdateCredential replaces the masked columns and payload of an existing
// row. Zero affected rows maps to [ErrCredentialNotFound].
func (r *credentialRepository) UpdateCredential(ctx context.Context, record models.CredentialRecord) error {
	log := logger.FromContext(ctx)

	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	query, args, err := buildUpdateCredentialQuery(r.db.builder(), record)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.UpdateCredential").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.execWithRetry(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.UpdateCredential").Str("credential_id", record.ID).Msg("failed to update credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

// DeleteCredential removes a row. Zero affected rows maps to
// [ErrCredentialNotFound].
func (r *credentialRepository) DeleteCredential(ctx context.Context, userID int64, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCredentialQuery(r.db.builder(), userID, id)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.DeleteCredential").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.execWithRetry(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.DeleteCredential").Str("credential_id", id).Msg("failed to delete credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}
