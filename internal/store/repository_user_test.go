// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{
		DB:      conn,
		dialect: DialectPostgres,
		logger:  logger.Nop(),
	}, mock
}

func TestUserRepository_FindUserByLogin_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	created := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE login = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(1), "alice", "argon-hash", "Alice", created))

	got, err := repo.FindUserByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "argon-hash", got.AuthHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindUserByLogin_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT .+ FROM users`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByLogin(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNoUserWasFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("alice", "argon-hash", "Alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE login = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(1), "alice", "argon-hash", "Alice", time.Now().UTC()))

	got, err := repo.CreateUser(context.Background(), models.User{
		Login:    "alice",
		Name:     "Alice",
		AuthHash: "argon-hash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_GetVault_NotFound2(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT .+ FROM vaults`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(vaultColumns))

	_, err := repo.GetVault(context.Background(), 7)
	require.ErrorIs(t, err, ErrVaultNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_CreateAndGet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	rec := models.VaultRecord{
		UserID:     7,
		KDFSalt:    []byte("0123456789abcdef"),
		WrappedDEK: []byte("wrapped"),
		Verifier:   []byte("verifier"),
	}

	mock.ExpectExec(`INSERT INTO vaults`).
		WithArgs(rec.UserID, rec.KDFSalt, rec.WrappedDEK, rec.Verifier, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.CreateVault(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, created.UpdatedAt.IsZero())

	mock.ExpectQuery(`SELECT .+ FROM vaults WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(vaultColumns).
			AddRow(rec.UserID, rec.KDFSalt, rec.WrappedDEK, rec.Verifier, created.CreatedAt, created.UpdatedAt))

	got, err := repo.GetVault(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, rec.WrappedDEK, got.WrappedDEK)
	require.NoError(t, mock.ExpectationsWereMet())
}
