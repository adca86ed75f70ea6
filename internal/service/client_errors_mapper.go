package service

import (
	"errors"

	"github.com/opsboard/credvault/internal/adapter"
)

// mapVaultAdapterError translates transport sentinels into the client
// session vocabulary so callers never depend on the adapter package.
func mapVaultAdapterError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, adapter.ErrMasterPassword):
		return ErrInvalidMasterPassword
	case errors.Is(err, adapter.ErrVaultState):
		return ErrVaultLocked
	default:
		return err
	}
}
