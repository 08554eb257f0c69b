package ws

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/afyasync/afyasync/backend/internal/locale"
	"github.com/afyasync/afyasync/backend/internal/middleware"
	"github.com/afyasync/afyasync/backend/internal/model/chat"
	"github.com/afyasync/afyasync/backend/internal/service/conversation"
)

// Handler carries chat turns over a WebSocket connection, one inbound
// message per turn.
type Handler struct {
	orchestrator *conversation.Orchestrator
	upgrader     websocket.Upgrader
}

// New creates the WebSocket chat handler.
func New(orchestrator *conversation.Orchestrator) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type inboundMessage struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type outgoingMessage struct {
	Type      string            `json:"type"`
	Message   *chat.Message     `json:"message,omitempty"`
	Contacts  map[string]string `json:"contacts,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// HandleWebSocket upgrades the connection and processes turns until the
// client disconnects.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for identity=%s", identity)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed for identity=%s: %v", identity, err)
			}
			return
		}

		turn, err := h.orchestrator.Submit(r.Context(), identity, inbound.Text, inbound.Language)
		if err != nil {
			if errors.Is(err, conversation.ErrInputEmpty) {
				continue
			}
			h.send(conn, outgoingMessage{Type: "error", Error: err.Error()})
			if errors.Is(err, conversation.ErrIdentityRevoked) {
				return
			}
			continue
		}

		h.send(conn, outgoingMessage{Type: "message", Message: &turn.User})
		h.send(conn, outgoingMessage{Type: "message", Message: &turn.Assistant})
		if turn.Crisis {
			h.send(conn, outgoingMessage{Type: "crisis", Contacts: locale.EmergencyContacts})
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, message outgoingMessage) {
	message.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(message); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}
