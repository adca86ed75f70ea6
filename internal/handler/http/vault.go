// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/utils"
	"github.com/opsboard/credvault/models"
)

// userID pulls the authenticated user from the request context. The auth
// middleware guarantees it is present on every route in the vault group, so
// a miss is a wiring bug and answered with 401.
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user id in request context")
		writeError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return 0, false
	}
	return id, true
}

func (h *Handler) vaultStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	status, err := h.services.VaultService.Status(r.Context(), id)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("vault status check failed")
		writeError(w, statusFromError(err), "vault status check failed")
		return
	}

	_, _ = utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) vaultSetup(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	log := logger.FromRequest(r)

	var req models.VaultSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}

	status, err := h.services.VaultService.Setup(r.Context(), id, req)
	if err != nil {
		log.Err(err).Msg("vault setup failed")
		writeError(w, statusFromError(err), "vault setup failed")
		return
	}

	_, _ = utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) vaultUnlock(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	log := logger.FromRequest(r)

	var req models.VaultUnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}

	status, err := h.services.VaultService.Unlock(r.Context(), id, req)
	if err != nil {
		log.Err(err).Msg("vault unlock failed")
		writeError(w, statusFromError(err), "vault unlock failed")
		return
	}

	_, _ = utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) vaultLock(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	status, err := h.services.VaultService.Lock(r.Context(), id)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("vault lock failed")
		writeError(w, statusFromError(err), "vault lock failed")
		return
	}

	_, _ = utils.WriteJSON(w, status, http.StatusOK)
}
