// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/utils"
	"github.com/opsboard/credvault/models"
)

func (h *Handler) listCredentials(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	list, err := h.services.CredentialService.List(r.Context(), id)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("credential listing failed")
		writeError(w, statusFromError(err), "credential listing failed")
		return
	}

	_, _ = utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) getCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	credentialID := chi.URLParam(r, "id")

	decrypted, err := h.services.CredentialService.Get(r.Context(), id, credentialID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("credential_id", credentialID).Msg("credential fetch failed")
		writeError(w, statusFromError(err), "credential fetch failed")
		return
	}

	_, _ = utils.WriteJSON(w, decrypted, http.StatusOK)
}

func (h *Handler) getCredentialField(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	credentialID := chi.URLParam(r, "id")
	field := models.CredentialField(chi.URLParam(r, "name"))

	value, err := h.services.CredentialService.GetField(r.Context(), id, credentialID, field)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("credential_id", credentialID).Msg("credential field fetch failed")
		writeError(w, statusFromError(err), "credential field fetch failed")
		return
	}

	_, _ = utils.WriteJSON(w, models.FieldValueResponse{Field: field, Value: value}, http.StatusOK)
}

// createCredential stores a new credential under the client-generated id
// from the URL. Using the client id makes a retried create idempotent: a
// second attempt collides on the same id instead of inserting a duplicate.
func (h *Handler) createCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	log := logger.FromRequest(r)
	credentialID := chi.URLParam(r, "id")

	var req models.CredentialWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}

	masked, err := h.services.CredentialService.Create(r.Context(), id, credentialID, req)
	if err != nil {
		log.Err(err).Str("credential_id", credentialID).Msg("credential creation failed")
		writeError(w, statusFromError(err), "credential creation failed")
		return
	}

	_, _ = utils.WriteJSON(w, masked, http.StatusCreated)
}

func (h *Handler) updateCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	log := logger.FromRequest(r)
	credentialID := chi.URLParam(r, "id")

	var req models.CredentialWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}

	masked, err := h.services.CredentialService.Update(r.Context(), id, credentialID, req)
	if err != nil {
		log.Err(err).Str("credential_id", credentialID).Msg("credential update failed")
		writeError(w, statusFromError(err), "credential update failed")
		return
	}

	_, _ = utils.WriteJSON(w, masked, http.StatusOK)
}

func (h *Handler) deleteCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	credentialID := chi.URLParam(r, "id")

	if err := h.services.CredentialService.Delete(r.Context(), id, credentialID); err != nil {
		logger.FromRequest(r).Err(err).Str("credential_id", credentialID).Msg("credential deletion failed")
		writeError(w, statusFromError(err), "credential deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
