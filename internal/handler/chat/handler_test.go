package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/afyasync/afyasync/backend/internal/auth"
	"github.com/afyasync/afyasync/backend/internal/middleware"
	"github.com/afyasync/afyasync/backend/internal/model/chat"
	"github.com/afyasync/afyasync/backend/internal/model/profile"
	"github.com/afyasync/afyasync/backend/internal/service/conversation"
	"github.com/afyasync/afyasync/backend/internal/service/session"
	"github.com/afyasync/afyasync/backend/internal/storage"
)

func setupRouter(reply string) (*chi.Mux, string, *session.Store) {
	registry := auth.NewRegistry()
	identity := registry.IssueAnonymous()

	sessions := session.NewStore(storage.NewMemory(), 0, "en")
	responder := conversation.ResponderFunc(func(context.Context, string, string, []conversation.HistoryTurn, *profile.Hints) (string, error) {
		return reply, nil
	})
	orchestrator := conversation.New(sessions, responder, conversation.Config{
		IdentityValid: registry.Valid,
	})
	handler := New(orchestrator, sessions)

	r := chi.NewRouter()
	r.Group(func(guarded chi.Router) {
		guarded.Use(middleware.RequireIdentity(registry))
		handler.RegisterRoutes(guarded)
	})
	return r, identity, sessions
}

func TestGetSessionReturnsGreeting(t *testing.T) {
	r, identity, _ := setupRouter("hello")

	req := httptest.NewRequest(http.MethodGet, "/chat/session", nil)
	req.Header.Set(middleware.IdentityHeader, identity)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Messages) != 1 || body.Messages[0].ID != chat.GreetingID {
		t.Fatalf("expected only the greeting, got %+v", body.Messages)
	}
}

func TestSubmitReturnsTurn(t *testing.T) {
	r, identity, _ := setupRouter("You are doing great.")

	payload, _ := json.Marshal(map[string]string{"text": "rough day", "language": "en"})
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.IdentityHeader, identity)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var turn conversation.Turn
	if err := json.Unmarshal(resp.Body.Bytes(), &turn); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if turn.Assistant.Content != "You are doing great." {
		t.Fatalf("unexpected assistant content %q", turn.Assistant.Content)
	}
	if turn.Crisis {
		t.Fatal("benign turn should not flag a crisis")
	}
}

func TestSubmitEmptyTextIsIgnored(t *testing.T) {
	r, identity, _ := setupRouter("hello")

	payload, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.IdentityHeader, identity)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestSubmitWithoutIdentity(t *testing.T) {
	r, _, _ := setupRouter("hello")

	payload, _ := json.Marshal(map[string]string{"text": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestClearSessionResetsToGreeting(t *testing.T) {
	r, identity, sessions := setupRouter("noted")

	payload, _ := json.Marshal(map[string]string{"text": "remember this"})
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.IdentityHeader, identity)
	r.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodDelete, "/chat/session", nil)
	req.Header.Set(middleware.IdentityHeader, identity)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	sess, err := sessions.Load(context.Background(), identity)
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	if len(sess.Messages) != 1 || sess.Messages[0].ID != chat.GreetingID {
		t.Fatalf("expected session reset to the greeting, got %+v", sess.Messages)
	}
}
