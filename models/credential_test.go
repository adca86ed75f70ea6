package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialDecrypted_Masked(t *testing.T) {
	dec := CredentialDecrypted{
		ID:         "cred-1",
		Name:       "Company bank",
		Category:   CategoryBanking,
		ServiceURL: "https://bank.example.com",
		Username:   "finance@example.com",
		Password:   "hunter2-but-longer",
		Notes:      "wire transfer limit 10k",
		TOTPSecret: "JBSWY3DPEHPK3PXP",
		CustomFields: []CustomField{
			{Type: FieldSecret, Name: "PIN", Value: "8712"},
			{Type: FieldText, Name: "Branch", Value: "Main St"},
		},
	}

	masked := dec.Masked()

	assert.Equal(t, dec.ID, masked.ID)
	assert.Equal(t, dec.Name, masked.Name)
	assert.Equal(t, dec.Category, masked.Category)
	assert.Equal(t, dec.ServiceURL, masked.ServiceURL)
	assert.True(t, masked.HasUsername)
	assert.True(t, masked.HasPassword)
	assert.True(t, masked.HasNotes)
	assert.True(t, masked.HasTOTP)
	assert.True(t, masked.HasCustomFields)
	assert.Equal(t, 2, masked.CustomFieldCount)
}

// Serializing a masked record must never contain any secret value from the
// decrypted record it was derived from.
func TestCredentialMasked_NoLeakage(t *testing.T) {
	dec := CredentialDecrypted{
		ID:         "cred-2",
		Name:       "Tax portal",
		Category:   CategoryTax,
		Username:   "ops-admin",
		Password:   "s3cret-password-value",
		Notes:      "filing deadline in April",
		Purpose:    "quarterly filings",
		TOTPSecret: "NB2W45DFOIZA",
		CustomFields: []CustomField{
			{Type: FieldSecret, Name: "Security answer", Value: "first pet name"},
		},
	}

	raw, err := json.Marshal(dec.Masked())
	require.NoError(t, err)

	serialized := string(raw)
	for _, secret := range []string{
		dec.Username, dec.Password, dec.Notes, dec.Purpose, dec.TOTPSecret,
		dec.CustomFields[0].Value,
	} {
		assert.NotContains(t, serialized, secret)
	}
}

func TestCredentialDecrypted_Masked_EmptyFields(t *testing.T) {
	masked := CredentialDecrypted{ID: "c", Name: "Bare", Category: CategoryOther}.Masked()

	assert.False(t, masked.HasUsername)
	assert.False(t, masked.HasPassword)
	assert.False(t, masked.HasNotes)
	assert.False(t, masked.HasTOTP)
	assert.False(t, masked.HasCustomFields)
	assert.Zero(t, masked.CustomFieldCount)
}

func TestCredentialDecrypted_Validate(t *testing.T) {
	valid := CredentialDecrypted{
		Name:     "Insurance portal",
		Category: CategoryInsurance,
		CustomFields: []CustomField{
			{Type: FieldDate, Name: "Renewal", Value: "2026-11-01"},
		},
	}
	require.NoError(t, valid.Validate())

	t.Run("missing name", func(t *testing.T) {
		c := valid
		c.Name = ""
		require.ErrorIs(t, c.Validate(), ErrNameRequired)
	})

	t.Run("unknown category", func(t *testing.T) {
		c := valid
		c.Category = "payroll"
		require.ErrorIs(t, c.Validate(), ErrUnknownCategory)
	})

	t.Run("invalid custom field", func(t *testing.T) {
		c := valid
		c.CustomFields = []CustomField{{Type: "blob", Name: "X"}}
		require.ErrorIs(t, c.Validate(), ErrUnknownFieldType)
	})

	t.Run("duplicate field names", func(t *testing.T) {
		c := valid
		c.CustomFields = []CustomField{
			{Type: FieldText, Name: "Ref", Value: "a"},
			{Type: FieldText, Name: "Ref", Value: "b"},
		}
		err := c.Validate()
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "duplicate"))
	})
}

func TestVaultStatusResponse_Session(t *testing.T) {
	assert.Equal(t, VaultUnprovisioned, VaultStatusResponse{}.Session().Status)
	assert.Equal(t, VaultLocked, VaultStatusResponse{IsSetup: true}.Session().Status)
	assert.Equal(t, VaultUnlocked, VaultStatusResponse{IsSetup: true, IsUnlocked: true}.Session().Status)
}
