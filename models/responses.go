package models

// FieldValueResponse is the wire shape of a single decrypted field returned
// by the copy-without-full-fetch endpoint.
type FieldValueResponse struct {
	// Field is the name of the field the value belongs to.
	Field CredentialField `json:"field"`

	// Value is the decrypted field content.
	Value string `json:"value"`
}

// ErrorResponse is the generic error body returned by the HTTP API.
type ErrorResponse struct {
	// Error is a short machine-readable error code.
	Error string `json:"error"`

	// Message is an optional human-readable detail.
	Message string `json:"message,omitempty"`
}
