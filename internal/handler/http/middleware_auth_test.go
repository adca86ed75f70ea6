package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/models"
)

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newHandlerFixture(t, ctrl)

	rr := f.do(t, http.MethodGet, "/api/vault/status", "", "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newHandlerFixture(t, ctrl)

	for _, header := range []string{"Bearer", "Bearer ", "one two three"} {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/vault/status", nil)
			req.Header.Set("Authorization", header)

			rr := httptest.NewRecorder()
			f.router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newHandlerFixture(t, ctrl)

	f.auth.EXPECT().
		ParseToken(gomock.Any(), "expired-token").
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	rr := f.do(t, http.MethodGet, "/api/vault/status", "expired-token", "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_ValidToken_PassesUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newHandlerFixture(t, ctrl)

	f.expectAuthed("valid-token", 42)
	f.vault.EXPECT().
		Status(gomock.Any(), int64(42)).
		Return(models.VaultStatusResponse{IsSetup: true, IsUnlocked: true}, nil)

	rr := f.do(t, http.MethodGet, "/api/vault/status", "valid-token", "")

	assert.Equal(t, http.StatusOK, rr.Code)
}
