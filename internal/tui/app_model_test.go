// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/opsboard/credvault/internal/mock"
	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/models"
)

func newTestAppModel(t *testing.T) (appModel, *mock.MockVaultController) {
	t.Helper()

	ctrl := gomock.NewController(t)
	controller := mock.NewMockVaultController(ctrl)
	return newAppModel(context.Background(), controller, "test"), controller
}

func maskedFixture() []models.CredentialMasked {
	return []models.CredentialMasked{
		{ID: "a", Name: "Business Bank", Category: models.CategoryBanking, ServiceURL: "https://bank.example.com"},
		{ID: "b", Name: "Tax Portal", Category: models.CategoryTax},
		{ID: "c", Name: "Payroll Tool", Category: models.CategoryTools},
	}
}

func TestRouteBySession(t *testing.T) {
	m, _ := newTestAppModel(t)

	next, _ := m.routeBySession(models.VaultSession{Status: models.VaultUnprovisioned}, "")
	assert.Equal(t, screenSetup, next.(appModel).screen)

	next, _ = m.routeBySession(models.VaultSession{Status: models.VaultLocked}, "locked")
	routed := next.(appModel)
	assert.Equal(t, screenUnlock, routed.screen)
	assert.Equal(t, "locked", routed.vault.status)

	next, cmd := m.routeBySession(models.VaultSession{Status: models.VaultUnlocked}, "")
	assert.Equal(t, screenList, next.(appModel).screen)
	assert.NotNil(t, cmd, "unlocked routing must start a listing refresh")
}

func TestLockPurgesDecryptedUIState(t *testing.T) {
	cred := models.CredentialDecrypted{
		ID:         "a",
		Name:       "Business Bank",
		Category:   models.CategoryBanking,
		Username:   "ops@example.com",
		Password:   "s3cr3t-pw",
		TOTPSecret: "JBSWY3DPEHPK3PXP",
		CustomFields: []models.CustomField{
			{Type: models.FieldSecret, Name: "PIN", Value: "0000"},
		},
	}

	for _, status := range []models.VaultStatus{models.VaultLocked, models.VaultUnprovisioned} {
		t.Run(string(status), func(t *testing.T) {
			m, _ := newTestAppModel(t)
			m.screen = screenDetail
			m.detail = newDetailModel(cred)
			m.form = newCredentialForm(&cred)
			m.list.items = maskedFixture()

			next, _ := m.onVaultChanged(vaultChangedMsg{session: models.VaultSession{Status: status}})

			// No decrypted value from the dead session may stay resident in
			// the UI model once the vault is no longer unlocked.
			routed := next.(appModel)
			assert.NotEqual(t, screenDetail, routed.screen)
			assert.Equal(t, models.CredentialDecrypted{}, routed.detail.cred)
			assert.Empty(t, routed.detail.rows)
			assert.Nil(t, routed.form.inputs, "edit form inputs hold secret runes and must be dropped")
			assert.Empty(t, routed.form.fields)
			assert.Empty(t, routed.list.items)
		})
	}
}

func TestOnListRefreshed_SessionExpiredRoutesToUnlock(t *testing.T) {
	m, _ := newTestAppModel(t)
	m.screen = screenList

	next, _ := m.onListRefreshed(listRefreshedMsg{err: service.ErrVaultLocked})

	routed := next.(appModel)
	assert.Equal(t, screenUnlock, routed.screen)
	assert.Contains(t, routed.vault.status, "relocked")
}

func TestOnListRefreshed_PopulatesListing(t *testing.T) {
	m, _ := newTestAppModel(t)
	m.screen = screenList
	m.list = newListModel()

	next, _ := m.onListRefreshed(listRefreshedMsg{items: maskedFixture()})

	routed := next.(appModel)
	assert.False(t, routed.list.loading)
	assert.Len(t, routed.list.items, 3)
}

func TestListModel_SearchAndCategoryFilter(t *testing.T) {
	l := newListModel()
	l.items = maskedFixture()

	l.search.SetValue("bank")
	visible := l.visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Business Bank", visible[0].Name)

	l.search.SetValue("")
	l.category = models.CategoryTax
	visible = l.visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Tax Portal", visible[0].Name)
}

func TestListModel_CycleCategoryWrapsThroughAll(t *testing.T) {
	l := newListModel()
	require.Equal(t, service.CategoryAll, l.category)

	seen := map[models.Category]bool{}
	for i := 0; i < len(models.Categories())+1; i++ {
		l.cycleCategory()
		seen[l.category] = true
	}

	// One full cycle must return to the unfiltered view and visit every
	// category exactly once.
	assert.Equal(t, service.CategoryAll, l.category)
	assert.Len(t, seen, len(models.Categories())+1)
}

func TestDetailView_MaskedUntilRevealed(t *testing.T) {
	m, controller := newTestAppModel(t)

	cred := models.CredentialDecrypted{
		ID:       "a",
		Name:     "Business Bank",
		Category: models.CategoryBanking,
		Username: "ops@example.com",
		Password: "s3cr3t-pw",
		CustomFields: []models.CustomField{
			{Type: models.FieldSecret, Name: "PIN", Value: "0000"},
		},
		UpdatedAt: time.Now(),
	}
	m.detail = newDetailModel(cred)

	controller.EXPECT().CopyFeedback().Return("", false).AnyTimes()
	controller.EXPECT().Revealed("a", service.RevealPassword).Return(false)
	controller.EXPECT().Revealed("a", service.CustomFieldKey("PIN")).Return(false)

	view := m.detail.view(controller)
	assert.NotContains(t, view, "s3cr3t-pw")
	assert.NotContains(t, view, "0000")
	assert.Contains(t, view, secretMask)
	assert.Contains(t, view, "ops@example.com", "username is not a secret field")

	controller.EXPECT().Revealed("a", service.RevealPassword).Return(true)
	controller.EXPECT().Revealed("a", service.CustomFieldKey("PIN")).Return(false)

	view = m.detail.view(controller)
	assert.Contains(t, view, "s3cr3t-pw")
	assert.NotContains(t, view, "0000")
}

func TestDetailView_CopyBadge(t *testing.T) {
	m, controller := newTestAppModel(t)
	m.detail = newDetailModel(models.CredentialDecrypted{
		ID: "a", Name: "Business Bank", Category: models.CategoryBanking,
		Username: "ops@example.com", Password: "pw",
	})

	controller.EXPECT().CopyFeedback().Return("a/password", true)
	controller.EXPECT().Revealed("a", service.RevealPassword).Return(false)

	view := m.detail.view(controller)
	assert.Contains(t, view, "copied")
}

func TestCredentialForm_ToRequest(t *testing.T) {
	f := newCredentialForm(nil)
	f.inputs[formInputName].SetValue("  Business Bank  ")
	f.inputs[formInputUsername].SetValue("ops@example.com")
	f.inputs[formInputPassword].SetValue("pw")
	f.fields = []models.CustomField{{Type: models.FieldText, Name: "branch", Value: "east"}}

	req := f.toRequest()
	assert.Equal(t, "Business Bank", req.Name)
	assert.Equal(t, models.Categories()[0], req.Category)
	assert.Equal(t, "pw", req.Password)
	require.Len(t, req.CustomFields, 1)
}

func TestCredentialForm_PrefillForEdit(t *testing.T) {
	cred := models.CredentialDecrypted{
		ID:       "a",
		Name:     "Tax Portal",
		Category: models.CategoryTax,
		Username: "ops",
		Password: "pw",
	}

	f := newCredentialForm(&cred)
	assert.True(t, f.editing)
	assert.Equal(t, "a", f.id)
	assert.Equal(t, models.CategoryTax, f.category())
	assert.Equal(t, "Tax Portal", f.inputs[formInputName].Value())
}

func TestCredentialForm_AppendField(t *testing.T) {
	f := newCredentialForm(nil)
	f.enterFieldStage()
	f.fieldInputs[0].SetValue("PIN")
	f.fieldInputs[1].SetValue("1234")
	for i, ft := range models.FieldTypes() {
		if ft == models.FieldSecret {
			f.fieldTypeIdx = i
		}
	}

	require.NoError(t, f.appendField())
	require.Len(t, f.fields, 1)
	assert.Equal(t, models.FieldSecret, f.fields[0].Type)
	assert.Equal(t, formStageMain, f.stage)

	// Missing name is rejected and keeps the mini-form open.
	f.enterFieldStage()
	f.fieldInputs[1].SetValue("x")
	assert.Error(t, f.appendField())
	assert.Equal(t, formStageField, f.stage)
}

func TestWelcomeView_ShowsVersion(t *testing.T) {
	m, _ := newTestAppModel(t)
	view := m.welcome.view(m.version)
	assert.True(t, strings.Contains(view, "version test"))
}
