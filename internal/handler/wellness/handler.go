package wellness

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/afyasync/afyasync/backend/internal/middleware"
	"github.com/afyasync/afyasync/backend/internal/model/profile"
	aiService "github.com/afyasync/afyasync/backend/internal/service/ai"
	wellnessService "github.com/afyasync/afyasync/backend/internal/service/wellness"
	"github.com/afyasync/afyasync/backend/pkg/utils"
)

// Handler exposes mood and journal records plus personalized affirmations.
type Handler struct {
	wellnessSvc *wellnessService.Service
	aiSvc       *aiService.Service
}

// New creates the wellness handler. aiSvc may be nil when the model is not
// configured; affirmations then fall back to a fixed list.
func New(wellnessSvc *wellnessService.Service, aiSvc *aiService.Service) *Handler {
	return &Handler{wellnessSvc: wellnessSvc, aiSvc: aiSvc}
}

// RegisterRoutes mounts the wellness routes behind the identity middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/wellness/moods", h.handleListMoods)
	r.Post("/wellness/moods", h.handleAddMood)
	r.Get("/wellness/journal", h.handleListJournal)
	r.Post("/wellness/journal", h.handleAddJournal)
	r.Delete("/wellness/journal/{entryID}", h.handleDeleteJournal)
	r.Get("/wellness/affirmations", h.handleAffirmations)
}

func (h *Handler) handleListMoods(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	moods, err := h.wellnessSvc.Moods(r.Context(), identity)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"entries": moods})
}

func (h *Handler) handleAddMood(w http.ResponseWriter, r *http.Request) {
	var entry profile.MoodEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if entry.Date == "" {
		entry.Date = time.Now().UTC().Format("2006-01-02")
	}

	identity := middleware.IdentityFromContext(r.Context())
	if err := h.wellnessSvc.AddMood(r.Context(), identity, entry); err != nil {
		if errors.Is(err, wellnessService.ErrInvalidMood) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleListJournal(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	entries, err := h.wellnessSvc.Journal(r.Context(), identity)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) handleAddJournal(w http.ResponseWriter, r *http.Request) {
	var entry profile.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if entry.Content == "" {
		utils.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}
	if entry.Date == "" {
		entry.Date = time.Now().UTC().Format("2006-01-02")
	}
	entry.CreatedAt = time.Now().UTC()

	identity := middleware.IdentityFromContext(r.Context())
	saved, err := h.wellnessSvc.AddJournal(r.Context(), identity, entry)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, saved)
}

func (h *Handler) handleDeleteJournal(w http.ResponseWriter, r *http.Request) {
	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if err := h.wellnessSvc.DeleteJournal(r.Context(), identity, entryID); err != nil {
		if errors.Is(err, wellnessService.ErrEntryNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAffirmations(w http.ResponseWriter, r *http.Request) {
	if h.aiSvc == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "affirmations unavailable")
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	language := r.URL.Query().Get("language")
	hints := h.wellnessSvc.Hints(r.Context(), identity)

	affirmations := h.aiSvc.Affirmations(r.Context(), language, hints)
	utils.RespondJSON(w, http.StatusOK, map[string]any{"affirmations": affirmations})
}
