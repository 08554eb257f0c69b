package stream

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/afyasync/afyasync/backend/internal/locale"
	"github.com/afyasync/afyasync/backend/internal/middleware"
	"github.com/afyasync/afyasync/backend/internal/model/chat"
	"github.com/afyasync/afyasync/backend/internal/service/conversation"
	"github.com/afyasync/afyasync/backend/pkg/utils"
)

// Handler drives one conversation turn over Server-Sent Events so the
// frontend can surface the crisis escalation as a dedicated event.
type Handler struct {
	orchestrator *conversation.Orchestrator
}

// New creates the stream handler.
func New(orchestrator *conversation.Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// Event is one streamed frame.
type Event struct {
	Event    string            `json:"event"`
	Message  *chat.Message     `json:"message,omitempty"`
	Contacts map[string]string `json:"contacts,omitempty"`
	Error    string            `json:"error,omitempty"`
	Finished bool              `json:"finished,omitempty"`
}

// HandleStream runs a full turn and emits start, message, crisis and end
// events.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	message := r.URL.Query().Get("message")
	language := r.URL.Query().Get("language")
	identity := middleware.IdentityFromContext(r.Context())

	utils.SetupSSEHeaders(w)
	utils.SendSSEChunk(w, flusher, Event{Event: "start"})

	turn, err := h.orchestrator.Submit(r.Context(), identity, message, language)
	if err != nil {
		if !errors.Is(err, conversation.ErrInputEmpty) {
			log.Printf("[stream] turn failed for %s: %v", identity, err)
		}
		utils.SendSSEChunk(w, flusher, Event{Event: "error", Error: fmt.Sprintf("turn not processed: %v", err)})
		utils.SendSSEChunk(w, flusher, Event{Event: "end", Finished: true})
		return
	}

	utils.SendSSEChunk(w, flusher, Event{Event: "message", Message: &turn.User})
	utils.SendSSEChunk(w, flusher, Event{Event: "message", Message: &turn.Assistant})
	if turn.Crisis {
		utils.SendSSEChunk(w, flusher, Event{Event: "crisis", Contacts: locale.EmergencyContacts})
	}
	utils.SendSSEChunk(w, flusher, Event{Event: "end", Finished: true})
}
