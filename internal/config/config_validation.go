// SPDX-License-Identifier: Apache-2.0

package config

// validate checks the invariants shared by every consumer of the merged
// [StructuredConfig]. Service-only requirements live in [ValidateServer]
// so the client can load the same config without server secrets.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case "", "postgres", "sqlite":
	default:
		return ErrInvalidStorageConfigs
	}

	return nil
}

// ValidateServer enforces the fields the vault service cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
