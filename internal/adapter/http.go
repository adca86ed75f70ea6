package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/opsboard/credvault/internal/config"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/utils"
	"github.com/opsboard/credvault/models"
)

type httpVaultAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPVaultAdapter constructs an HTTP/REST implementation of
// [VaultAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPVaultAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (VaultAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpVaultAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [VaultAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpVaultAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [VaultAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpVaultAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [VaultAdapter]. It POSTs the account credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpVaultAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	user.Password = ""
	return user, nil
}

// Login implements [VaultAdapter]. It POSTs the account credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpVaultAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	var foundUser models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&foundUser).
		Post("/api/auth/login")
	if err != nil {
		return user, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return user, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	foundUser.Password = ""
	return foundUser, nil
}

// Status implements [VaultAdapter]. GET /api/vault/status.
func (h *httpVaultAdapter) Status(ctx context.Context) (models.VaultStatusResponse, error) {
	var status models.VaultStatusResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&status).
		Get("/api/vault/status")
	if err != nil {
		return models.VaultStatusResponse{}, fmt.Errorf("vault status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultStatusResponse{}, err
	}

	return status, nil
}

// Setup implements [VaultAdapter]. POST /api/vault/setup.
func (h *httpVaultAdapter) Setup(ctx context.Context, req models.VaultSetupRequest) (models.VaultStatusResponse, error) {
	var status models.VaultStatusResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&status).
		Post("/api/vault/setup")
	if err != nil {
		return models.VaultStatusResponse{}, fmt.Errorf("vault setup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultStatusResponse{}, err
	}

	return status, nil
}

// Unlock implements [VaultAdapter]. POST /api/vault/unlock. A rejected
// master password surfaces as [ErrMasterPassword].
func (h *httpVaultAdapter) Unlock(ctx context.Context, req models.VaultUnlockRequest) (models.VaultStatusResponse, error) {
	var status models.VaultStatusResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&status).
		Post("/api/vault/unlock")
	if err != nil {
		return models.VaultStatusResponse{}, fmt.Errorf("vault unlock request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultStatusResponse{}, err
	}

	return status, nil
}

// Lock implements [VaultAdapter]. POST /api/vault/lock.
func (h *httpVaultAdapter) Lock(ctx context.Context) (models.VaultStatusResponse, error) {
	var status models.VaultStatusResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&status).
		Post("/api/vault/lock")
	if err != nil {
		return models.VaultStatusResponse{}, fmt.Errorf("vault lock request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultStatusResponse{}, err
	}

	return status, nil
}

// ListCredentials implements [VaultAdapter]. GET /api/vault/credentials.
// The response carries masked records only.
func (h *httpVaultAdapter) ListCredentials(ctx context.Context) ([]models.CredentialMasked, error) {
	var list []models.CredentialMasked

	resp, err := h.authedRequest(ctx).
		SetResult(&list).
		Get("/api/vault/credentials")
	if err != nil {
		return nil, fmt.Errorf("list credentials request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list, nil
}

// GetCredential implements [VaultAdapter].
// GET /api/vault/credentials/{id}.
func (h *httpVaultAdapter) GetCredential(ctx context.Context, id string) (models.CredentialDecrypted, error) {
	var cred models.CredentialDecrypted

	resp, err := h.authedRequest(ctx).
		SetResult(&cred).
		Get("/api/vault/credentials/" + url.PathEscape(id))
	if err != nil {
		return models.CredentialDecrypted{}, fmt.Errorf("get credential request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CredentialDecrypted{}, err
	}

	return cred, nil
}

// GetCredentialField implements [VaultAdapter].
// GET /api/vault/credentials/{id}/field/{name}. The narrow shape exists so
// that copying a password does not materialise the whole decrypted record in
// client state.
func (h *httpVaultAdapter) GetCredentialField(ctx context.Context, id string, field models.CredentialField) (string, error) {
	var value models.FieldValueResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&value).
		Get("/api/vault/credentials/" + url.PathEscape(id) + "/field/" + url.PathEscape(string(field)))
	if err != nil {
		return "", fmt.Errorf("get credential field request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return value.Value, nil
}

// CreateCredential implements [VaultAdapter].
// POST /api/vault/credentials. The id is client-generated so that retries
// are idempotent.
func (h *httpVaultAdapter) CreateCredential(ctx context.Context, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error) {
	var masked models.CredentialMasked

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&masked).
		Post("/api/vault/credentials/" + url.PathEscape(id))
	if err != nil {
		return models.CredentialMasked{}, fmt.Errorf("create credential request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CredentialMasked{}, err
	}

	return masked, nil
}

// UpdateCredential implements [VaultAdapter].
// PUT /api/vault/credentials/{id}.
func (h *httpVaultAdapter) UpdateCredential(ctx context.Context, id string, req models.CredentialWriteRequest) (models.CredentialMasked, error) {
	var masked models.CredentialMasked

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&masked).
		Put("/api/vault/credentials/" + url.PathEscape(id))
	if err != nil {
		return models.CredentialMasked{}, fmt.Errorf("update credential request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CredentialMasked{}, err
	}

	return masked, nil
}

// DeleteCredential implements [VaultAdapter].
// DELETE /api/vault/credentials/{id}.
func (h *httpVaultAdapter) DeleteCredential(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/vault/credentials/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete credential request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpVaultAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
