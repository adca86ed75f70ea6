// SPDX-License-Identifier: Apache-2.0

package models

import (
	"fmt"
	"slices"
	"time"
)

// Category groups credentials by business function. The set is fixed; the
// listing filter matches against it exactly.
type Category string

const (
	CategoryBanking    Category = "banking"
	CategoryTax        Category = "tax"
	CategoryLegal      Category = "legal"
	CategoryGovernment Category = "government"
	CategoryAccounting Category = "accounting"
	CategoryInsurance  Category = "insurance"
	CategoryVendors    Category = "vendors"
	CategoryTools      Category = "tools"
	CategoryOther      Category = "other"
)

// Categories lists every valid [Category] in display order.
func Categories() []Category {
	return []Category{
		CategoryBanking, CategoryTax, CategoryLegal, CategoryGovernment,
		CategoryAccounting, CategoryInsurance, CategoryVendors,
		CategoryTools, CategoryOther,
	}
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

// CredentialMasked is the list-view representation of a credential. It
// carries identity, category, and presence flags only — by construction it
// has no field that could hold secret bytes. This is the only type the
// listing, search, and filter paths ever see.
type CredentialMasked struct {
	// ID is the unique identifier of the credential.
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// Category is the business grouping of the credential.
	Category Category `json:"category"`

	// ServiceURL is the optional address of the service the credential
	// belongs to. Non-secret; participates in search.
	ServiceURL string `json:"service_url,omitempty"`

	// HasUsername reports that a username is stored without carrying it.
	HasUsername bool `json:"has_username"`

	// HasPassword reports that a password is stored without carrying it.
	HasPassword bool `json:"has_password"`

	// HasNotes reports that notes are stored without carrying them.
	HasNotes bool `json:"has_notes"`

	// HasTOTP reports that a TOTP seed is stored without carrying it.
	HasTOTP bool `json:"has_totp"`

	// HasCustomFields reports that custom fields are attached.
	HasCustomFields bool `json:"has_custom_fields"`

	// CustomFieldCount is the number of attached custom fields.
	CustomFieldCount int `json:"custom_field_count"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// CredentialDecrypted is the full plaintext credential payload. Instances
// exist only transiently: created by an explicit fetch, held in the
// session-scoped cache, and destroyed when the vault locks.
type CredentialDecrypted struct {
	// ID is the unique identifier of the credential.
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// Category is the business grouping of the credential.
	Category Category `json:"category"`

	// ServiceURL is the optional address of the service.
	ServiceURL string `json:"service_url,omitempty"`

	// Username is the login identifier, if stored.
	Username string `json:"username,omitempty"`

	// Password is the secret credential, if stored.
	Password string `json:"password,omitempty"`

	// Notes is free-form text attached to the credential.
	Notes string `json:"notes,omitempty"`

	// Purpose describes what the credential is used for.
	Purpose string `json:"purpose,omitempty"`

	// TOTPSecret is the seed for time-based one-time passwords.
	TOTPSecret string `json:"totp_secret,omitempty"`

	// CustomFields holds the typed user-defined fields.
	CustomFields []CustomField `json:"custom_fields,omitempty"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// Masked derives the list-view representation. The conversion is one-way:
// a masked record can only become decrypted again through an explicit fetch,
// never by re-deriving values locally.
func (c CredentialDecrypted) Masked() CredentialMasked {
	return CredentialMasked{
		ID:               c.ID,
		Name:             c.Name,
		Category:         c.Category,
		ServiceURL:       c.ServiceURL,
		HasUsername:      c.Username != "",
		HasPassword:      c.Password != "",
		HasNotes:         c.Notes != "",
		HasTOTP:          c.TOTPSecret != "",
		HasCustomFields:  len(c.CustomFields) > 0,
		CustomFieldCount: len(c.CustomFields),
		UpdatedAt:        c.UpdatedAt,
	}
}

// Validate checks the write-path invariants: a name, a known category, and
// structurally valid custom fields with unique names.
func (c CredentialDecrypted) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if !c.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c.Category)
	}

	seen := make(map[string]struct{}, len(c.CustomFields))
	for _, f := range c.CustomFields {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("duplicate custom field name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
