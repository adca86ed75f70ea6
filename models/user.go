package models

import "time"

// User is a dashboard account. Authentication to the dashboard is separate
// from the vault master password: a user may be logged in while their vault
// is still locked or not yet provisioned.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique login identifier.
	Login string `json:"login"`

	// Name is the display name. Non-sensitive, may be shown in UI.
	Name string `json:"name"`

	// Password carries the account password on register/login requests only.
	// It is never persisted in plain form.
	Password string `json:"password,omitempty"`

	// AuthHash is the stored password hash. Persistence-layer only, never
	// serialised.
	AuthHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table associated with the User model.
func (u User) TableName() string {
	return "users"
}
