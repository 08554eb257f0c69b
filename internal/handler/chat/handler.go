package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afyasync/afyasync/backend/internal/middleware"
	"github.com/afyasync/afyasync/backend/internal/service/conversation"
	"github.com/afyasync/afyasync/backend/internal/service/session"
	"github.com/afyasync/afyasync/backend/pkg/utils"
)

// Handler exposes the conversation pipeline over REST.
type Handler struct {
	orchestrator *conversation.Orchestrator
	sessions     *session.Store
}

// New creates the chat handler.
func New(orchestrator *conversation.Orchestrator, sessions *session.Store) *Handler {
	return &Handler{orchestrator: orchestrator, sessions: sessions}
}

// RegisterRoutes mounts the chat routes. Callers guard them with the
// identity middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/session", h.handleGetSession)
	r.Post("/chat/messages", h.handleSubmit)
	r.Delete("/chat/session", h.handleClearSession)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	sess, err := h.sessions.Load(r.Context(), identity)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": sess.Messages})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	turn, err := h.orchestrator.Submit(r.Context(), identity, payload.Text, payload.Language)
	switch {
	case errors.Is(err, conversation.ErrInputEmpty):
		// Empty input is ignored without a user-visible error.
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, conversation.ErrTurnInFlight):
		utils.RespondError(w, http.StatusConflict, "a turn is already in flight")
		return
	case errors.Is(err, conversation.ErrIdentityRevoked):
		utils.RespondError(w, http.StatusGone, "identity is no longer active")
		return
	case err != nil:
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, turn)
}

func (h *Handler) handleClearSession(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	if err := h.sessions.Clear(r.Context(), identity); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
