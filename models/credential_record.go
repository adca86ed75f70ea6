package models

import "time"

// CredentialRecord is the persisted shape of a credential. The masked
// columns are stored in plain form and computed at write time, so listing
// never touches the encrypted payload; Payload is the AES-GCM blob holding
// everything secret.
type CredentialRecord struct {
	// ID is the client-generated credential identifier (UUID).
	ID string

	// UserID is the owning dashboard account.
	UserID int64

	// Name is the display name. Stored in plain form for listing and search.
	Name string

	// Category is the business grouping. Stored in plain form for filtering.
	Category Category

	// ServiceURL is the non-secret service address.
	ServiceURL string

	// Presence flags, derived from the plaintext at write time.
	HasUsername      bool
	HasPassword      bool
	HasNotes         bool
	HasTOTP          bool
	CustomFieldCount int

	// Payload is the base64 AES-GCM blob of the full decrypted record.
	Payload string

	// CreatedAt is when the credential was first stored.
	CreatedAt time.Time

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time
}

// TableName returns the database table associated with the CredentialRecord
// model.
func (c CredentialRecord) TableName() string {
	return "credentials"
}

// Masked converts the stored row into the list-view representation.
func (c CredentialRecord) Masked() CredentialMasked {
	return CredentialMasked{
		ID:               c.ID,
		Name:             c.Name,
		Category:         c.Category,
		ServiceURL:       c.ServiceURL,
		HasUsername:      c.HasUsername,
		HasPassword:      c.HasPassword,
		HasNotes:         c.HasNotes,
		HasTOTP:          c.HasTOTP,
		HasCustomFields:  c.CustomFieldCount > 0,
		CustomFieldCount: c.CustomFieldCount,
		UpdatedAt:        c.UpdatedAt,
	}
}
