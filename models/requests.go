package models

// CredentialField names a built-in credential field addressable by the
// narrow copy endpoint (GET credential/{id}/field/{name}).
type CredentialField string

const (
	// CredentialUsername addresses the username field.
	CredentialUsername CredentialField = "username"

	// CredentialPassword addresses the password field.
	CredentialPassword CredentialField = "password"
)

// Valid reports whether f is addressable by the field endpoint.
func (f CredentialField) Valid() bool {
	return f == CredentialUsername || f == CredentialPassword
}

// VaultSetupRequest carries the master password pair for provisioning a
// vault. Confirm is checked client-side before any network call and again
// server-side.
type VaultSetupRequest struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// VaultUnlockRequest carries the master password for opening a locked vault.
type VaultUnlockRequest struct {
	Password string `json:"password"`
}

// CredentialWriteRequest is the payload for creating or updating a
// credential. Plaintext fields are encrypted by the vault service; the
// client never encrypts locally.
type CredentialWriteRequest struct {
	Name         string        `json:"name"`
	Category     Category      `json:"category"`
	ServiceURL   string        `json:"service_url,omitempty"`
	Username     string        `json:"username,omitempty"`
	Password     string        `json:"password,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	Purpose      string        `json:"purpose,omitempty"`
	TOTPSecret   string        `json:"totp_secret,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}

// Decrypted converts the write payload into the plaintext credential shape
// used for validation and encryption.
func (r CredentialWriteRequest) Decrypted(id string) CredentialDecrypted {
	return CredentialDecrypted{
		ID:           id,
		Name:         r.Name,
		Category:     r.Category,
		ServiceURL:   r.ServiceURL,
		Username:     r.Username,
		Password:     r.Password,
		Notes:        r.Notes,
		Purpose:      r.Purpose,
		TOTPSecret:   r.TOTPSecret,
		CustomFields: r.CustomFields,
	}
}
