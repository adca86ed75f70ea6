package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/mock"
	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/models"
)

type handlerFixture struct {
	router      http.Handler
	auth        *mock.MockAuthService
	vault       *mock.MockVaultService
	credentials *mock.MockCredentialService
}

func newHandlerFixture(t *testing.T, ctrl *gomock.Controller) handlerFixture {
	t.Helper()

	auth := mock.NewMockAuthService(ctrl)
	vault := mock.NewMockVaultService(ctrl)
	credentials := mock.NewMockCredentialService(ctrl)

	services := &service.Services{
		AuthService:       auth,
		VaultService:      vault,
		CredentialService: credentials,
	}

	buildInfo := models.NewAppBuildInfo("v1.2.3", "2026-08-29", "abc1234")
	handler := NewHandler(services, buildInfo, logger.Nop())

	return handlerFixture{
		router:      handler.Init(),
		auth:        auth,
		vault:       vault,
		credentials: credentials,
	}
}

// do executes a request against the full router, optionally with a bearer
// token, and returns the recorded response.
func (f handlerFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

// expectAuthed arms the auth mock so that one request with the given token
// resolves to userID.
func (f handlerFixture) expectAuthed(token string, userID int64) {
	f.auth.EXPECT().
		ParseToken(gomock.Any(), token).
		Return(models.Token{UserID: userID}, nil)
}

func TestHandler_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newHandlerFixture(t, ctrl)

	rr := f.do(t, http.MethodGet, "/api/version", "", "")

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "v1.2.3")
	require.Contains(t, rr.Body.String(), "abc1234")
}
