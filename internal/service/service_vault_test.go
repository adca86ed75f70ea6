// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/opsboard/credvault/internal/crypto"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/mock"
	"github.com/opsboard/credvault/internal/store"
	"github.com/opsboard/credvault/models"
)

const testMasterPassword = "correct horse battery"

// newTestVaultService builds a vault service on a mocked repository and the
// real key chain, so the full derive/wrap/verify path is exercised.
func newTestVaultService(t *testing.T, ctrl *gomock.Controller) (*vaultService, *mock.MockVaultRepository) {
	t.Helper()

	vaults := mock.NewMockVaultRepository(ctrl)
	svc, ok := NewVaultService(vaults, crypto.NewKeyChainService(), logger.Nop()).(*vaultService)
	require.True(t, ok)
	return svc, vaults
}

// provisionVault runs Setup against the mocked repository and returns the
// key material it persisted.
func provisionVault(t *testing.T, svc *vaultService, vaults *mock.MockVaultRepository, userID int64) models.VaultRecord {
	t.Helper()

	var stored models.VaultRecord
	vaults.EXPECT().
		CreateVault(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.VaultRecord) (models.VaultRecord, error) {
			stored = record
			return record, nil
		})

	status, err := svc.Setup(context.Background(), userID, models.VaultSetupRequest{
		Password: testMasterPassword,
		Confirm:  testMasterPassword,
	})
	require.NoError(t, err)
	require.True(t, status.IsSetup)
	require.True(t, status.IsUnlocked)
	return stored
}

func TestVaultService_Setup(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vaults := newTestVaultService(t, ctrl)

	stored := provisionVault(t, svc, vaults, 7)

	assert.Equal(t, int64(7), stored.UserID)
	assert.Len(t, stored.KDFSalt, 16)
	assert.NotEmpty(t, stored.WrappedDEK)
	assert.NotEmpty(t, stored.Verifier)

	// Setup opens the session immediately; no separate unlock needed.
	dek, err := svc.SessionDEK(7)
	require.NoError(t, err)
	assert.Len(t, dek, 32)
}

func TestVaultService_Setup_BadPasswordPair(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestVaultService(t, ctrl)

	_, err := svc.Setup(context.Background(), 7, models.VaultSetupRequest{
		Password: "short", Confirm: "short",
	})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	// Rune count, not byte count: "пароль!" is thirteen bytes but only
	// seven characters.
	_, err = svc.Setup(context.Background(), 7, models.VaultSetupRequest{
		Password: "пароль!", Confirm: "пароль!",
	})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Setup(context.Background(), 7, models.VaultSetupRequest{
		Password: testMasterPassword, Confirm: "something else!",
	})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// A failed setup must not leave a session behind.
	_, err = svc.SessionDEK(7)
	assert.ErrorIs(t, err, ErrVaultSessionLocked)
}

func TestVaultService_Setup_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vaults := newTestVaultService(t, ctrl)

	vaults.EXPECT().
		CreateVault(gomock.Any(), gomock.Any()).
		Return(models.VaultRecord{}, store.ErrVaultAlreadyExists)

	_, err := svc.Setup(context.Background(), 7, models.VaultSetupRequest{
		Password: testMasterPassword, Confirm: testMasterPassword,
	})
	assert.ErrorIs(t, err, store.ErrVaultAlreadyExists)

	_, err = svc.SessionDEK(7)
	assert.ErrorIs(t, err, ErrVaultSessionLocked)
}

func TestVaultService_Unlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vaults := newTestVaultService(t, ctrl)

	stored := provisionVault(t, svc, vaults, 7)
	originalDEK, err := svc.SessionDEK(7)
	require.NoError(t, err)

	// Fresh service: same persisted key material, no sessions.
	restarted, restartedVaults := newTestVaultService(t, ctrl)
	restartedVaults.EXPECT().GetVault(gomock.Any(), int64(7)).Return(stored, nil)

	status, err := restarted.Unlock(context.Background(), 7, models.VaultUnlockRequest{Password: testMasterPassword})
	require.NoError(t, err)
	assert.True(t, status.IsSetup)
	assert.True(t, status.IsUnlocked)

	unlockedDEK, err := restarted.SessionDEK(7)
	require.NoError(t, err)
	assert.Equal(t, originalDEK, unlockedDEK, "unlock must recover the same dek setup generated")
}

func TestVaultService_Unlock_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vaults := newTestVaultService(t, ctrl)

	stored := provisionVault(t, svc, vaults, 7)
	svc.closeSession(7)

	vaults.EXPECT().GetVault(gomock.Any(), int64(7)).Return(stored, nil)

	_, err := svc.Unlock(context.Background(), 7, models.VaultUnlockRequest{Password: "wrong password!!"})
	assert.ErrorIs(t, err, ErrMasterPasswordRejected)

	_, err = svc.SessionDEK(7)
	assert.ErrorIs(t, err, ErrVaultSessionLocked)
}

func TestVaultService_Unlock_NotProvisioned(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vaults := newTestVaultService(t, ctrl)

	vaults.EXPECT().GetVault(gomock.Any(), int64(7)).Return(models.VaultRecord{}, store.ErrVaultNotFound)

	_, err := svc.Unlock(context.Background(), 7, models.VaultUnlockRequest{Password: testMasterPassword})
	assert.ErrorIs(t, err, ErrVaultNotSetup)
}

func TestVaultService_Lock(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vaults := newTestVaultService(t, ctrl)

	stored := provisionVault(t, svc, vaults, 7)
	vaults.EXPECT().GetVault(gomock.Any(), int64(7)).Return(stored, nil)

	status, err := svc.Lock(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, status.IsSetup)
	assert.False(t, status.IsUnlocked)

	_, err = svc.SessionDEK(7)
	assert.ErrorIs(t, err, ErrVaultSessionLocked)
}

func TestVaultService_Lock_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vaults := newTestVaultService(t, ctrl)

	vaults.EXPECT().GetVault(gomock.Any(), int64(7)).Return(models.VaultRecord{}, store.ErrVaultNotFound)

	status, err := svc.Lock(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, status.IsSetup)
	assert.False(t, status.IsUnlocked)
}

func TestVaultService_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vaults := newTestVaultService(t, ctrl)

	vaults.EXPECT().GetVault(gomock.Any(), int64(7)).Return(models.VaultRecord{}, store.ErrVaultNotFound)
	status, err := svc.Status(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, status.IsSetup)
	assert.False(t, status.IsUnlocked)

	stored := provisionVault(t, svc, vaults, 7)
	vaults.EXPECT().GetVault(gomock.Any(), int64(7)).Return(stored, nil)
	status, err = svc.Status(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, status.IsSetup)
	assert.True(t, status.IsUnlocked)

	svc.closeSession(7)
	vaults.EXPECT().GetVault(gomock.Any(), int64(7)).Return(stored, nil)
	status, err = svc.Status(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, status.IsSetup)
	assert.False(t, status.IsUnlocked)
}

func TestVaultService_SessionDEK_ReturnsCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vaults := newTestVaultService(t, ctrl)

	provisionVault(t, svc, vaults, 7)

	first, err := svc.SessionDEK(7)
	require.NoError(t, err)
	for i := range first {
		first[i] = 0xFF
	}

	second, err := svc.SessionDEK(7)
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "mutating a returned dek must not touch the session copy")
}

func TestVaultService_ReapIdleSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestVaultService(t, ctrl)

	base := time.Now()
	svc.now = func() time.Time { return base.Add(-time.Hour) }
	svc.openSession(1, make([]byte, 32))

	svc.now = func() time.Time { return base }
	svc.openSession(2, make([]byte, 32))

	reaped := svc.ReapIdleSessions(15 * time.Minute)
	assert.Equal(t, 1, reaped)

	_, err := svc.SessionDEK(1)
	assert.ErrorIs(t, err, ErrVaultSessionLocked)
	_, err = svc.SessionDEK(2)
	assert.NoError(t, err)
}

// A use of the session through SessionDEK must refresh the idle timer.
func TestVaultService_ReapIdleSessions_TouchedSessionSurvives(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestVaultService(t, ctrl)

	base := time.Now()
	svc.now = func() time.Time { return base.Add(-time.Hour) }
	svc.openSession(1, make([]byte, 32))

	svc.now = func() time.Time { return base }
	_, err := svc.SessionDEK(1)
	require.NoError(t, err)

	assert.Zero(t, svc.ReapIdleSessions(15*time.Minute))
}
