// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/models"
)

func vaultRecordFixture() models.VaultRecord {
	return models.VaultRecord{
		UserID:     7,
		KDFSalt:    []byte("salt-bytes-16byte"),
		WrappedDEK: []byte("wrapped-dek"),
		Verifier:   []byte("verifier"),
	}
}

func TestVaultRepository_CreateVault_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	rec := vaultRecordFixture()
	mock.ExpectExec(`INSERT INTO vaults`).
		WithArgs(rec.UserID, rec.KDFSalt, rec.WrappedDEK, rec.Verifier, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.CreateVault(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero(), "timestamps are stamped on insert")
	assert.False(t, got.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_CreateVault_AlreadyExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	mock.ExpectExec(`INSERT INTO vaults`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.CreateVault(context.Background(), vaultRecordFixture())
	require.ErrorIs(t, err, ErrVaultAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_GetVault(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	created := time.Date(2026, time.February, 2, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM vaults WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(vaultColumns).
			AddRow(int64(7), []byte("salt"), []byte("dek"), []byte("ver"), created, created))

	got, err := repo.GetVault(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []byte("dek"), got.WrappedDEK)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_GetVault_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT .+ FROM vaults`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(vaultColumns))

	_, err := repo.GetVault(context.Background(), 404)
	require.ErrorIs(t, err, ErrVaultNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
