// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/credvault/models"
)

func TestKeyChain_SaltAndDEKAreRandom(t *testing.T) {
	kc := NewKeyChainService()

	s1, err := kc.GenerateSalt()
	require.NoError(t, err)
	s2, err := kc.GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, s1, 16)
	assert.NotEqual(t, s1, s2)

	d1, err := kc.GenerateDEK()
	require.NoError(t, err)
	d2, err := kc.GenerateDEK()
	require.NoError(t, err)
	assert.Len(t, d1, 32)
	assert.NotEqual(t, d1, d2)
}

func TestKeyChain_DeriveKEK_Deterministic(t *testing.T) {
	kc := NewKeyChainService()
	salt := []byte("0123456789abcdef")

	kek1 := kc.DeriveKEK("correct horse", salt)
	kek2 := kc.DeriveKEK("correct horse", salt)
	assert.Equal(t, kek1, kek2)
	assert.Len(t, kek1, 32)

	// Different password or salt must give a different key.
	assert.NotEqual(t, kek1, kc.DeriveKEK("wrong horse", salt))
	assert.NotEqual(t, kek1, kc.DeriveKEK("correct horse", []byte("fedcba9876543210")))
}

func TestKeyChain_WrapUnwrapDEK_RoundTrip(t *testing.T) {
	kc := NewKeyChainService()
	salt := []byte("0123456789abcdef")
	kek := kc.DeriveKEK("correct horse", salt)

	dek, err := kc.GenerateDEK()
	require.NoError(t, err)

	wrapped, err := kc.WrapDEK(dek, kek)
	require.NoError(t, err)
	assert.NotContains(t, string(wrapped), string(dek))

	got, err := kc.UnwrapDEK(wrapped, kek)
	require.NoError(t, err)
	assert.Equal(t, dek, got)
}

func TestKeyChain_UnwrapDEK_WrongKEKFails(t *testing.T) {
	kc := NewKeyChainService()
	salt := []byte("0123456789abcdef")

	dek, err := kc.GenerateDEK()
	require.NoError(t, err)
	wrapped, err := kc.WrapDEK(dek, kc.DeriveKEK("correct horse", salt))
	require.NoError(t, err)

	_, err = kc.UnwrapDEK(wrapped, kc.DeriveKEK("wrong horse", salt))
	require.Error(t, err)
}

func TestKeyChain_UnwrapDEK_TruncatedBlob(t *testing.T) {
	kc := NewKeyChainService()
	kek := kc.DeriveKEK("correct horse", []byte("0123456789abcdef"))

	_, err := kc.UnwrapDEK([]byte("short"), kek)
	require.Error(t, err)
}

func TestKeyChain_Verifier(t *testing.T) {
	kc := NewKeyChainService()
	salt := []byte("0123456789abcdef")

	kek := kc.DeriveKEK("correct horse", salt)
	assert.Equal(t, kc.Verifier(kek), kc.Verifier(kek))
	assert.NotEqual(t, kc.Verifier(kek), kc.Verifier(kc.DeriveKEK("wrong horse", salt)))

	// The verifier must not simply be the KEK.
	assert.NotEqual(t, kek, kc.Verifier(kek))
}

func TestKeyChain_PayloadRoundTrip(t *testing.T) {
	kc := NewKeyChainService()
	dek, err := kc.GenerateDEK()
	require.NoError(t, err)

	payload := models.CredentialDecrypted{
		ID:       "cred-1",
		Name:     "Business Bank",
		Category: models.CategoryBanking,
		Username: "ops@example.com",
		Password: "s3cr3t-pw",
		CustomFields: []models.CustomField{
			{Type: models.FieldSecret, Name: "PIN", Value: "0000"},
		},
	}

	blob, err := kc.EncryptPayload(payload, dek)
	require.NoError(t, err)
	assert.NotContains(t, blob, "s3cr3t-pw")

	var got models.CredentialDecrypted
	require.NoError(t, kc.DecryptPayload(blob, dek, &got))
	assert.Equal(t, payload, got)
}

func TestKeyChain_DecryptPayload_WrongDEKFails(t *testing.T) {
	kc := NewKeyChainService()
	dek1, err := kc.GenerateDEK()
	require.NoError(t, err)
	dek2, err := kc.GenerateDEK()
	require.NoError(t, err)

	blob, err := kc.EncryptPayload(map[string]string{"k": "v"}, dek1)
	require.NoError(t, err)

	var got map[string]string
	require.Error(t, kc.DecryptPayload(blob, dek2, &got))
}
