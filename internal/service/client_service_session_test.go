// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/opsboard/credvault/internal/adapter"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/mock"
	"github.com/opsboard/credvault/models"
)

func newTestController(t *testing.T, ctrl *gomock.Controller) (*vaultController, *mock.MockVaultAdapter) {
	t.Helper()
	mockAdapter := mock.NewMockVaultAdapter(ctrl)
	vc, ok := NewVaultController(mockAdapter, logger.Nop()).(*vaultController)
	require.True(t, ok)
	return vc, mockAdapter
}

// unlockedController drives the controller into the unlocked state through
// the public API.
func unlockedController(t *testing.T, ctrl *gomock.Controller) (*vaultController, *mock.MockVaultAdapter) {
	t.Helper()
	vc, mockAdapter := newTestController(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Status(ctx).Return(models.VaultStatusResponse{IsSetup: true}, nil)
	mockAdapter.EXPECT().Unlock(ctx, models.VaultUnlockRequest{Password: "correct horse"}).
		Return(models.VaultStatusResponse{IsSetup: true, IsUnlocked: true}, nil)

	_, err := vc.QueryStatus(ctx)
	require.NoError(t, err)
	session, err := vc.Unlock(ctx, "correct horse")
	require.NoError(t, err)
	require.Equal(t, models.VaultUnlocked, session.Status)
	return vc, mockAdapter
}

func testDecrypted(id string) models.CredentialDecrypted {
	return models.CredentialDecrypted{
		ID:         id,
		Name:       "Business Bank",
		Category:   models.CategoryBanking,
		ServiceURL: "https://bank.example.com",
		Username:   "ops@example.com",
		Password:   "s3cr3t-pw",
		TOTPSecret: "JBSWY3DPEHPK3PXP",
		CustomFields: []models.CustomField{
			{Type: models.FieldSecret, Name: "PIN", Value: "0000"},
		},
	}
}

// ── Setup ────────────────────────────────────────────────────────────────────

func TestVaultController_Setup_PasswordTooShort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, _ := newTestController(t, ctrl)

	_, err := vc.Setup(context.Background(), "short", "short")
	require.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Equal(t, models.VaultUnprovisioned, vc.Session().Status)

	// Length is counted in runes: "пароль!" is thirteen bytes but only
	// seven characters, still too short.
	_, err = vc.Setup(context.Background(), "пароль!", "пароль!")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestVaultController_Setup_PasswordMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, _ := newTestController(t, ctrl)

	_, err := vc.Setup(context.Background(), "long enough", "but different")
	require.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Equal(t, models.VaultUnprovisioned, vc.Session().Status)
}

func TestVaultController_Setup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := newTestController(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Setup(ctx, models.VaultSetupRequest{Password: "correct horse", Confirm: "correct horse"}).
		Return(models.VaultStatusResponse{IsSetup: true, IsUnlocked: true}, nil)

	session, err := vc.Setup(ctx, "correct horse", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, models.VaultUnlocked, session.Status)
}

func TestVaultController_Setup_AlreadySetup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := newTestController(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Status(ctx).Return(models.VaultStatusResponse{IsSetup: true}, nil)
	_, err := vc.QueryStatus(ctx)
	require.NoError(t, err)

	_, err = vc.Setup(ctx, "correct horse", "correct horse")
	require.ErrorIs(t, err, ErrVaultAlreadySetup)
}

// ── Unlock ───────────────────────────────────────────────────────────────────

func TestVaultController_Unlock_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := newTestController(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Status(ctx).Return(models.VaultStatusResponse{IsSetup: true}, nil)
	_, err := vc.QueryStatus(ctx)
	require.NoError(t, err)

	mockAdapter.EXPECT().Unlock(ctx, models.VaultUnlockRequest{Password: "wrong"}).
		Return(models.VaultStatusResponse{}, adapter.ErrMasterPassword)

	session, err := vc.Unlock(ctx, "wrong")
	require.ErrorIs(t, err, ErrInvalidMasterPassword)
	assert.Equal(t, models.VaultLocked, session.Status)
}

func TestVaultController_Unlock_NotLocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, _ := newTestController(t, ctrl)

	_, err := vc.Unlock(context.Background(), "correct horse")
	require.ErrorIs(t, err, ErrVaultNotLocked)
}

// ── Lock ─────────────────────────────────────────────────────────────────────

func TestVaultController_Lock_PurgesEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().ListCredentials(ctx).
		Return([]models.CredentialMasked{cred.Masked()}, nil)
	mockAdapter.EXPECT().GetCredential(ctx, "cred-1").Return(cred, nil)

	_, err := vc.Refresh(ctx)
	require.NoError(t, err)
	visible, err := vc.ToggleReveal(ctx, "cred-1", RevealPassword)
	require.NoError(t, err)
	require.True(t, visible)

	mockAdapter.EXPECT().Lock(ctx).Return(models.VaultStatusResponse{IsSetup: true}, nil)
	session, err := vc.Lock(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.VaultLocked, session.Status)

	assert.Empty(t, vc.Credentials())
	assert.False(t, vc.Revealed("cred-1", RevealPassword))
	_, ok := vc.FieldValue("cred-1", RevealPassword)
	assert.False(t, ok)
	_, err = vc.Get(ctx, "cred-1")
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestVaultController_Lock_RemoteFailureStillLocksLocally(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Lock(ctx).
		Return(models.VaultStatusResponse{}, errors.New("connection refused"))

	session, err := vc.Lock(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.VaultLocked, session.Status)
}

func TestVaultController_Lock_WhenNotUnlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, _ := newTestController(t, ctrl)

	_, err := vc.Lock(context.Background())
	require.ErrorIs(t, err, ErrVaultLocked)
}

// ── QueryStatus ──────────────────────────────────────────────────────────────

func TestVaultController_QueryStatus_RemoteRelockPurges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().GetCredential(ctx, "cred-1").Return(cred, nil)
	_, err := vc.Get(ctx, "cred-1")
	require.NoError(t, err)

	// Server-side session expired: the vault is locked again remotely.
	mockAdapter.EXPECT().Status(ctx).Return(models.VaultStatusResponse{IsSetup: true}, nil)
	session, err := vc.QueryStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.VaultLocked, session.Status)

	_, ok := vc.FieldValue("cred-1", RevealPassword)
	assert.False(t, ok)
}

func TestVaultController_QueryStatus_UnlockedAfterRestart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := newTestController(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Status(ctx).
		Return(models.VaultStatusResponse{IsSetup: true, IsUnlocked: true}, nil)

	session, err := vc.QueryStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, models.VaultUnlocked, session.Status)

	// The session scope must exist even though Unlock was never called here.
	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().GetCredential(ctx, "cred-1").Return(cred, nil)
	got, err := vc.Get(ctx, "cred-1")
	require.NoError(t, err)
	assert.Equal(t, cred, got)
}

// ── Listing / fetch ──────────────────────────────────────────────────────────

func TestVaultController_Refresh_RequiresUnlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, _ := newTestController(t, ctrl)

	_, err := vc.Refresh(context.Background())
	require.ErrorIs(t, err, ErrVaultLocked)
}

func TestVaultController_Get_CachesSecondCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().GetCredential(ctx, "cred-1").Return(cred, nil).Times(1)

	first, err := vc.Get(ctx, "cred-1")
	require.NoError(t, err)
	second, err := vc.Get(ctx, "cred-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// ── Reveal ───────────────────────────────────────────────────────────────────

func TestVaultController_ToggleReveal_FetchesOnceAndToggles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().GetCredential(ctx, "cred-1").Return(cred, nil).Times(1)

	visible, err := vc.ToggleReveal(ctx, "cred-1", RevealPassword)
	require.NoError(t, err)
	assert.True(t, visible)

	value, ok := vc.FieldValue("cred-1", RevealPassword)
	require.True(t, ok)
	assert.Equal(t, "s3cr3t-pw", value)

	// Hiding and revealing again must not refetch: the record is cached.
	visible, err = vc.ToggleReveal(ctx, "cred-1", RevealPassword)
	require.NoError(t, err)
	assert.False(t, visible)

	visible, err = vc.ToggleReveal(ctx, "cred-1", RevealPassword)
	require.NoError(t, err)
	assert.True(t, visible)
}

func TestVaultController_ToggleReveal_CustomField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().GetCredential(ctx, "cred-1").Return(cred, nil)

	visible, err := vc.ToggleReveal(ctx, "cred-1", CustomFieldKey("PIN"))
	require.NoError(t, err)
	assert.True(t, visible)

	value, ok := vc.FieldValue("cred-1", CustomFieldKey("PIN"))
	require.True(t, ok)
	assert.Equal(t, "0000", value)
}

func TestVaultController_ToggleReveal_UnknownField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().GetCredential(ctx, "cred-1").Return(cred, nil)

	_, err := vc.ToggleReveal(ctx, "cred-1", CustomFieldKey("no such field"))
	require.ErrorIs(t, err, ErrUnknownField)
	assert.False(t, vc.Revealed("cred-1", CustomFieldKey("no such field")))
}

func TestVaultController_ToggleReveal_LockedVault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, _ := newTestController(t, ctrl)

	_, err := vc.ToggleReveal(context.Background(), "cred-1", RevealPassword)
	require.ErrorIs(t, err, ErrVaultLocked)
}

// ── Copy ─────────────────────────────────────────────────────────────────────

func TestVaultController_Copy_FromCacheWithFeedback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	current := base
	vc.now = func() time.Time { return current }

	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().GetCredential(ctx, "cred-1").Return(cred, nil)
	_, err := vc.Get(ctx, "cred-1")
	require.NoError(t, err)

	// Cached record: no call to the narrow field endpoint expected.
	value, err := vc.Copy(ctx, "cred-1", models.CredentialPassword)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t-pw", value)

	key, active := vc.CopyFeedback()
	require.True(t, active)
	assert.Equal(t, "cred-1/password", key)

	current = base.Add(copyFeedbackTTL - time.Millisecond)
	_, active = vc.CopyFeedback()
	assert.True(t, active)

	current = base.Add(copyFeedbackTTL + time.Millisecond)
	_, active = vc.CopyFeedback()
	assert.False(t, active)
}

func TestVaultController_Copy_NarrowFetchWhenNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().GetCredentialField(ctx, "cred-1", models.CredentialUsername).
		Return("ops@example.com", nil)

	value, err := vc.Copy(ctx, "cred-1", models.CredentialUsername)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", value)

	// The narrow value must not end up in the full-record cache.
	_, ok := vc.FieldValue("cred-1", RevealPassword)
	assert.False(t, ok)
}

// ── CRUD ─────────────────────────────────────────────────────────────────────

func TestVaultController_Create_ValidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, _ := unlockedController(t, ctrl)

	_, err := vc.Create(context.Background(), models.CredentialWriteRequest{
		Name:     "",
		Category: models.CategoryBanking,
	})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	require.ErrorIs(t, err, models.ErrNameRequired)
}

func TestVaultController_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	req := models.CredentialWriteRequest{
		Name:     "Payroll Portal",
		Category: models.CategoryAccounting,
		Password: "pw",
	}

	var generatedID string
	mockAdapter.EXPECT().CreateCredential(ctx, gomock.Any(), req).
		DoAndReturn(func(_ context.Context, id string, r models.CredentialWriteRequest) (models.CredentialMasked, error) {
			generatedID = id
			return r.Decrypted(id).Masked(), nil
		})

	masked, err := vc.Create(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, generatedID)
	assert.Equal(t, generatedID, masked.ID)
	assert.True(t, masked.HasPassword)

	listing := vc.Credentials()
	require.Len(t, listing, 1)
	assert.Equal(t, masked, listing[0])
}

func TestVaultController_Update_EvictsCacheAndReveals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().ListCredentials(ctx).
		Return([]models.CredentialMasked{cred.Masked()}, nil)
	mockAdapter.EXPECT().GetCredential(ctx, "cred-1").Return(cred, nil)

	_, err := vc.Refresh(ctx)
	require.NoError(t, err)
	_, err = vc.ToggleReveal(ctx, "cred-1", RevealPassword)
	require.NoError(t, err)

	req := models.CredentialWriteRequest{
		Name:     "Business Bank",
		Category: models.CategoryBanking,
		Password: "rotated-pw",
	}
	mockAdapter.EXPECT().UpdateCredential(ctx, "cred-1", req).
		Return(req.Decrypted("cred-1").Masked(), nil)

	masked, err := vc.Update(ctx, "cred-1", req)
	require.NoError(t, err)

	assert.False(t, vc.Revealed("cred-1", RevealPassword))
	_, ok := vc.FieldValue("cred-1", RevealPassword)
	assert.False(t, ok)

	listing := vc.Credentials()
	require.Len(t, listing, 1)
	assert.Equal(t, masked, listing[0])
}

func TestVaultController_Delete_RemovesFromListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vc, mockAdapter := unlockedController(t, ctrl)
	ctx := context.Background()

	cred := testDecrypted("cred-1")
	mockAdapter.EXPECT().ListCredentials(ctx).
		Return([]models.CredentialMasked{cred.Masked()}, nil)
	_, err := vc.Refresh(ctx)
	require.NoError(t, err)

	mockAdapter.EXPECT().DeleteCredential(ctx, "cred-1").Return(nil)
	require.NoError(t, vc.Delete(ctx, "cred-1"))

	assert.Empty(t, vc.Credentials())
}
