package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version", h.version)
	})

	// vault routes require a valid dashboard session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/vault/status", h.vaultStatus)
		r.Post("/api/vault/setup", h.vaultSetup)
		r.Post("/api/vault/unlock", h.vaultUnlock)
		r.Post("/api/vault/lock", h.vaultLock)

		r.Get("/api/vault/credentials", h.listCredentials)
		r.Post("/api/vault/credentials/{id}", h.createCredential)
		r.Get("/api/vault/credentials/{id}", h.getCredential)
		r.Put("/api/vault/credentials/{id}", h.updateCredential)
		r.Delete("/api/vault/credentials/{id}", h.deleteCredential)
		r.Get("/api/vault/credentials/{id}/field/{name}", h.getCredentialField)
	})

	return router
}
