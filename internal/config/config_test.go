// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "signkey")
	t.Setenv("APP_TOKEN_ISSUER", "credvault")
	t.Setenv("APP_TOKEN_DURATION", "30m")
	t.Setenv("STORAGE_DB_DRIVER", "postgres")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost:5432/credvault")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("VAULT_SESSION_TTL", "15m")
	t.Setenv("ADAPTER_ADDRESS", "localhost:8080")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "signkey", cfg.App.TokenSignKey)
	assert.Equal(t, "credvault", cfg.App.TokenIssuer)
	assert.Equal(t, 30*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, "postgres", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://localhost:5432/credvault", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Minute, cfg.Vault.SessionTTL)
	assert.Equal(t, "localhost:8080", cfg.Adapter.HTTPAddress)
}

func TestParseJSON(t *testing.T) {
	raw := `{
		"app": {
			"token_sign_key": "signkey",
			"token_issuer": "credvault",
			"token_duration": "1h"
		},
		"storage": {"db": {"driver": "sqlite", "dsn": "credvault.db"}},
		"server": {"http_address": "localhost:9090", "request_timeout": "30s"},
		"vault": {"session_ttl": "10m", "reap_interval": "1m"},
		"adapter": {"http_address": "localhost:9090", "request_timeout": "5s"}
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "signkey", cfg.App.TokenSignKey)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Vault.SessionTTL)
	assert.Equal(t, time.Minute, cfg.Vault.ReapInterval)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    string
	}{
		{name: "localhost with port", input: "localhost:8080", want: "localhost:8080"},
		{name: "ip with port", input: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:abc", wantErr: true},
		{name: "negative port", input: "localhost:-1", wantErr: true},
		{name: "bad host", input: "not-an-ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())
		})
	}
}

func TestNetAddress_String_Zero(t *testing.T) {
	var addr NetAddress
	assert.Empty(t, addr.String())
}

func TestStructuredConfig_Validation(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, cfg.validate())

	cfg.Storage.DB.Driver = "oracle"
	require.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestStructuredConfig_ValidateServer(t *testing.T) {
	cfg := &StructuredConfig{
		App:     App{TokenSignKey: "signkey"},
		Storage: Storage{DB: DB{Driver: "sqlite", DSN: "credvault.db"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
	require.NoError(t, cfg.ValidateServer())

	missingKey := *cfg
	missingKey.App.TokenSignKey = ""
	require.ErrorIs(t, missingKey.ValidateServer(), ErrInvalidAppConfigs)

	missingDSN := *cfg
	missingDSN.Storage.DB.DSN = ""
	require.ErrorIs(t, missingDSN.ValidateServer(), ErrInvalidStorageConfigs)

	missingAddr := *cfg
	missingAddr.Server.HTTPAddress = ""
	require.ErrorIs(t, missingAddr.ValidateServer(), ErrInvalidServerConfigs)
}

func TestClientConfig_Validation(t *testing.T) {
	valid := &ClientConfig{Adapter: ClientAdapter{
		HTTPAddress:    "localhost:8080",
		RequestTimeout: 30 * time.Second,
	}}
	require.NoError(t, valid.validate())

	noAddr := &ClientConfig{Adapter: ClientAdapter{RequestTimeout: time.Second}}
	require.ErrorIs(t, noAddr.validate(), ErrInvalidAdapterConfigs)

	noTimeout := &ClientConfig{Adapter: ClientAdapter{HTTPAddress: "localhost:8080"}}
	require.ErrorIs(t, noTimeout.validate(), ErrInvalidAdapterConfigs)
}
