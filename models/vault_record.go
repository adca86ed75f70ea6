package models

import "time"

// VaultRecord is the persisted key material of one tenant vault. All three
// byte fields are safe to store: the salt is public, the wrapped DEK is
// AES-GCM ciphertext, and the verifier is a one-way digest of the KEK.
type VaultRecord struct {
	// UserID is the owner of the vault. One vault per user.
	UserID int64

	// KDFSalt is the Argon2id salt for deriving the KEK from the master
	// password.
	KDFSalt []byte

	// WrappedDEK is the data-encryption key sealed under the KEK.
	WrappedDEK []byte

	// Verifier is the stored master-password check value.
	Verifier []byte

	// CreatedAt is when the vault was provisioned.
	CreatedAt time.Time

	// UpdatedAt is the timestamp of the last key-material change.
	UpdatedAt time.Time
}

// TableName returns the database table associated with the VaultRecord model.
func (v VaultRecord) TableName() string {
	return "vaults"
}
