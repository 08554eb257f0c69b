package auth

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afyasync/afyasync/backend/internal/auth"
	"github.com/afyasync/afyasync/backend/internal/middleware"
	"github.com/afyasync/afyasync/backend/internal/service/session"
	wellnessService "github.com/afyasync/afyasync/backend/internal/service/wellness"
	"github.com/afyasync/afyasync/backend/pkg/utils"
)

// Handler issues anonymous identities and tears down per-identity state on
// logout.
type Handler struct {
	registry    *auth.Registry
	sessions    *session.Store
	wellnessSvc *wellnessService.Service
}

// New creates the auth handler.
func New(registry *auth.Registry, sessions *session.Store, wellnessSvc *wellnessService.Service) *Handler {
	return &Handler{registry: registry, sessions: sessions, wellnessSvc: wellnessSvc}
}

// RegisterPublicRoutes mounts the route that does not require an identity.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/anonymous", h.handleAnonymous)
}

// RegisterRoutes mounts the routes guarded by the identity middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/logout", h.handleLogout)
}

func (h *Handler) handleAnonymous(w http.ResponseWriter, r *http.Request) {
	identity := h.registry.IssueAnonymous()
	utils.RespondJSON(w, http.StatusCreated, map[string]string{"identity": identity})
}

// handleLogout revokes the identity first so any in-flight responder reply is
// discarded, then clears everything stored under it.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	h.registry.Revoke(identity)
	if err := h.sessions.Clear(r.Context(), identity); err != nil {
		log.Printf("[auth] failed to clear session for %s: %v", identity, err)
	}
	if err := h.wellnessSvc.Clear(r.Context(), identity); err != nil {
		log.Printf("[auth] failed to clear wellness records for %s: %v", identity, err)
	}
	w.WriteHeader(http.StatusNoContent)
}
