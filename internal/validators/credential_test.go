// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/credvault/models"
)

func validWriteRequest() models.CredentialWriteRequest {
	return models.CredentialWriteRequest{
		Name:       "Business Bank",
		Category:   models.CategoryBanking,
		ServiceURL: "https://bank.example.com",
		Username:   "ops@example.com",
		Password:   "s3cr3t",
	}
}

func TestCredentialValidator_WriteRequest(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validWriteRequest()))
	})

	t.Run("pointer accepted", func(t *testing.T) {
		req := validWriteRequest()
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("missing name", func(t *testing.T) {
		req := validWriteRequest()
		req.Name = ""
		assert.ErrorIs(t, v.Validate(ctx, req), models.ErrNameRequired)
	})

	t.Run("unknown category", func(t *testing.T) {
		req := validWriteRequest()
		req.Category = "snacks"
		assert.ErrorIs(t, v.Validate(ctx, req), models.ErrUnknownCategory)
	})

	t.Run("bad service url", func(t *testing.T) {
		for _, raw := range []string{"not a url", "ftp://bank.example.com", "https://"} {
			req := validWriteRequest()
			req.ServiceURL = raw
			assert.ErrorIs(t, v.Validate(ctx, req), ErrInvalidURL, "url %q", raw)
		}
	})

	t.Run("empty service url is fine", func(t *testing.T) {
		req := validWriteRequest()
		req.ServiceURL = ""
		require.NoError(t, v.Validate(ctx, req))
	})
}

func TestCredentialValidator_CustomFields(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	t.Run("date field format", func(t *testing.T) {
		field := models.CustomField{Type: models.FieldDate, Name: "renewal", Value: "2026-02-30"}
		assert.ErrorIs(t, v.Validate(ctx, field), ErrInvalidDate)

		field.Value = "2026-03-01"
		require.NoError(t, v.Validate(ctx, field))
	})

	t.Run("empty date allowed", func(t *testing.T) {
		field := models.CustomField{Type: models.FieldDate, Name: "renewal"}
		require.NoError(t, v.Validate(ctx, field))
	})

	t.Run("url field format", func(t *testing.T) {
		field := models.CustomField{Type: models.FieldURL, Name: "portal", Value: "nope"}
		assert.ErrorIs(t, v.Validate(ctx, field), ErrInvalidURL)
	})

	t.Run("bad field inside request", func(t *testing.T) {
		req := validWriteRequest()
		req.CustomFields = []models.CustomField{
			{Type: models.FieldDate, Name: "renewal", Value: "next tuesday"},
		}
		assert.ErrorIs(t, v.Validate(ctx, req), ErrInvalidDate)
	})

	t.Run("structural rules still apply", func(t *testing.T) {
		field := models.CustomField{Type: "checkbox", Name: "x"}
		assert.ErrorIs(t, v.Validate(ctx, field), models.ErrUnknownFieldType)
	})
}

func TestCredentialValidator_UnsupportedType(t *testing.T) {
	v := NewCredentialValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}
