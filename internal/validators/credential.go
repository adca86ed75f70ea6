// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/opsboard/credvault/models"
)

const dateLayout = "2006-01-02"

// CredentialValidator validates credential write payloads and individual
// custom fields.
type CredentialValidator struct {
}

// NewCredentialValidator returns a [Validator] for credential write
// payloads.
func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

// Validate dispatches on the object type.
func (v *CredentialValidator) Validate(ctx context.Context, obj any) error {
	switch value := obj.(type) {
	case models.CredentialWriteRequest:
		return v.validateWriteRequest(ctx, value)
	case *models.CredentialWriteRequest:
		return v.validateWriteRequest(ctx, *value)

	case models.CustomField:
		return v.validateCustomField(ctx, value)
	case *models.CustomField:
		return v.validateCustomField(ctx, *value)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *CredentialValidator) validateWriteRequest(ctx context.Context, req models.CredentialWriteRequest) error {
	// Structural rules (name, category, field uniqueness) live on the
	// model; the checks below add format rules the model stays agnostic of.
	if err := req.Decrypted("").Validate(); err != nil {
		return err
	}

	if err := validateHTTPURL(req.ServiceURL); err != nil {
		return fmt.Errorf("service url: %w", err)
	}

	for _, field := range req.CustomFields {
		if err := v.validateCustomField(ctx, field); err != nil {
			return err
		}
	}
	return nil
}

func (v *CredentialValidator) validateCustomField(_ context.Context, field models.CustomField) error {
	if err := field.Validate(); err != nil {
		return err
	}

	switch field.Type {
	case models.FieldURL:
		if err := validateHTTPURL(field.Value); err != nil {
			return fmt.Errorf("field %q: %w", field.Name, err)
		}
	case models.FieldDate:
		if field.Value == "" {
			return nil
		}
		if _, err := time.Parse(dateLayout, field.Value); err != nil {
			return fmt.Errorf("field %q: %w", field.Name, ErrInvalidDate)
		}
	}
	return nil
}

// validateHTTPURL accepts an empty value or an absolute http(s) URL.
func validateHTTPURL(raw string) error {
	if raw == "" {
		return nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}
