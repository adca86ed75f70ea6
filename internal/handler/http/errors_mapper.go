package http

import (
	"errors"
	"net/http"

	"github.com/opsboard/credvault/internal/service"
	"github.com/opsboard/credvault/internal/store"
	"github.com/opsboard/credvault/internal/utils"
	"github.com/opsboard/credvault/models"
)

// errorStatusMap routes service and store sentinels to HTTP statuses. The
// contract with the client adapter is fixed: 403 always means "master
// password rejected" and 409 always means "wrong vault state".
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrMasterPasswordRejected:  http.StatusForbidden,
	service.ErrVaultNotSetup:           http.StatusConflict,
	service.ErrVaultSessionLocked:      http.StatusConflict,

	// Only surfaces on login, so it must be indistinguishable from a wrong
	// password.
	store.ErrNoUserWasFound: http.StatusUnauthorized,

	store.ErrLoginAlreadyExists:      http.StatusConflict,
	store.ErrVaultAlreadyExists:      http.StatusConflict,
	store.ErrCredentialAlreadyExists: http.StatusConflict,
	store.ErrVaultNotFound:           http.StatusConflict,
	store.ErrCredentialNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError emits the JSON error body shared with the client adapter.
func writeError(w http.ResponseWriter, status int, message string) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}, status)
}
