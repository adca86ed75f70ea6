package adapter

import "errors"

var (
	// ErrBadRequest maps HTTP 400: the request payload failed server-side
	// validation.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized maps HTTP 401: the dashboard session token is missing,
	// expired, or invalid.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrMasterPassword maps HTTP 403: the vault rejected the master
	// password. The vault state did not change.
	ErrMasterPassword = errors.New("master password rejected")

	// ErrNotFound maps HTTP 404: the credential does not exist.
	ErrNotFound = errors.New("not found")

	// ErrVaultState maps HTTP 409: the operation is invalid for the current
	// vault state (e.g. listing credentials while locked, setup of an
	// already provisioned vault).
	ErrVaultState = errors.New("invalid vault state")

	// ErrInternalServerError maps HTTP 500.
	ErrInternalServerError = errors.New("internal server error")
)
