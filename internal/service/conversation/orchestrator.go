package conversation

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/afyasync/afyasync/backend/internal/analysis/crisis"
	"github.com/afyasync/afyasync/backend/internal/locale"
	"github.com/afyasync/afyasync/backend/internal/model/chat"
	"github.com/afyasync/afyasync/backend/internal/model/profile"
	"github.com/afyasync/afyasync/backend/internal/service/session"
)

var (
	ErrIdentityRequired = errors.New("identity is required")
	ErrInputEmpty       = errors.New("input text is empty")
	ErrTurnInFlight     = errors.New("a turn is already in flight for this identity")
	ErrIdentityRevoked  = errors.New("identity changed while the turn was in flight")
)

const (
	// DefaultHistoryLimit bounds how many prior messages reach the responder.
	DefaultHistoryLimit = 10
	// DefaultResponderTimeout bounds the external responder call.
	DefaultResponderTimeout = 30 * time.Second
)

// HistoryTurn is one prior message mapped to the responder's role
// vocabulary.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Responder generates the assistant reply. It may fail or return text
// ending in the crisis marker; the orchestrator handles both.
type Responder interface {
	Respond(ctx context.Context, message, language string, history []HistoryTurn, hints *profile.Hints) (string, error)
}

// ResponderFunc adapts a plain function to the Responder interface.
type ResponderFunc func(ctx context.Context, message, language string, history []HistoryTurn, hints *profile.Hints) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, message, language string, history []HistoryTurn, hints *profile.Hints) (string, error) {
	return f(ctx, message, language, history, hints)
}

// Config tunes the orchestrator and wires its collaborators.
type Config struct {
	HistoryLimit     int
	ResponderTimeout time.Duration
	DefaultLanguage  string

	// OnCrisis is the escalation callback, invoked at most once per turn.
	// It is assumed infallible: if it panics, the panic propagates, because
	// suppressing the crisis surface would hide a safety bug.
	OnCrisis func(identity string)

	// Hints optionally supplies recent wellness context to the responder.
	Hints func(ctx context.Context, identity string) *profile.Hints

	// IdentityValid, when set, is consulted after the responder returns so a
	// reply that lands after logout or an account switch is discarded
	// instead of appended.
	IdentityValid func(identity string) bool
}

// Turn is the completed result of one Submit call.
type Turn struct {
	User      chat.Message `json:"user"`
	Assistant chat.Message `json:"assistant"`
	Crisis    bool         `json:"crisis"`
}

// Orchestrator drives one user turn to completion: validation, local crisis
// detection, optimistic user append, the bounded responder call, crisis
// merging and escalation, and the assistant append.
type Orchestrator struct {
	sessions  *session.Store
	responder Responder
	cfg       Config

	mu       sync.Mutex
	inflight map[string]bool
}

// New builds an orchestrator over the session store and responder.
func New(sessions *session.Store, responder Responder, cfg Config) *Orchestrator {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.ResponderTimeout <= 0 {
		cfg.ResponderTimeout = DefaultResponderTimeout
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = locale.Default
	}
	return &Orchestrator{
		sessions:  sessions,
		responder: responder,
		cfg:       cfg,
		inflight:  make(map[string]bool),
	}
}

// Submit processes one user turn. Responder failures are recovered into a
// fallback assistant message and never surface; only invalid input/identity
// and a mid-flight identity change are reported, and callers are expected
// to treat those quietly.
func (o *Orchestrator) Submit(ctx context.Context, identity, text, language string) (*Turn, error) {
	if identity == "" {
		return nil, ErrIdentityRequired
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrInputEmpty
	}
	if language == "" {
		language = o.cfg.DefaultLanguage
	}

	if !o.acquire(identity) {
		return nil, ErrTurnInFlight
	}
	defer o.release(identity)

	// Local detection runs before anything that can block on the network.
	detected := crisis.Detect(text)

	sess, err := o.sessions.Load(ctx, identity)
	if err != nil {
		return nil, err
	}
	history := buildHistory(sess.Messages, o.cfg.HistoryLimit)

	userMsg := chat.NewMessage(sess.LastID(), chat.RoleUser, text)
	if err := o.sessions.Append(ctx, identity, userMsg); err != nil {
		log.Printf("[conversation] failed to persist user message for %s: %v", identity, err)
	}

	var hints *profile.Hints
	if o.cfg.Hints != nil {
		hints = o.cfg.Hints(ctx, identity)
	}

	rctx, cancel := context.WithTimeout(ctx, o.cfg.ResponderTimeout)
	raw, rerr := o.responder.Respond(rctx, text, language, history, hints)
	cancel()

	content := ""
	flagged := false
	if rerr != nil {
		log.Printf("[conversation] responder failed for %s: %v", identity, rerr)
		content = locale.Fallback(language)
	} else {
		content, flagged = crisis.ParseMarker(raw)
	}

	isCrisis := detected || flagged
	if isCrisis {
		if o.cfg.OnCrisis != nil {
			o.cfg.OnCrisis(identity)
		}
		// A responder-flagged reply already carries guidance in the
		// requested language and is preserved verbatim; the local safety
		// message only replaces successful replies the responder did not
		// flag. A failed call keeps its retry fallback, the escalation
		// surface carries the emergency resources.
		if detected && !flagged && rerr == nil {
			content = locale.CrisisWarning(language)
		}
	}

	assistantMsg := chat.NewMessage(userMsg.ID, chat.RoleAssistant, content)

	if o.cfg.IdentityValid != nil && !o.cfg.IdentityValid(identity) {
		log.Printf("[conversation] identity %s no longer active, discarding responder output", identity)
		return nil, ErrIdentityRevoked
	}
	if err := o.sessions.Append(ctx, identity, assistantMsg); err != nil {
		log.Printf("[conversation] failed to persist assistant message for %s: %v", identity, err)
	}

	return &Turn{User: userMsg, Assistant: assistantMsg, Crisis: isCrisis}, nil
}

func (o *Orchestrator) acquire(identity string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inflight[identity] {
		return false
	}
	o.inflight[identity] = true
	return true
}

func (o *Orchestrator) release(identity string) {
	o.mu.Lock()
	delete(o.inflight, identity)
	o.mu.Unlock()
}

// buildHistory maps the most recent limit messages to the responder's role
// vocabulary, skipping the synthesized greeting and system entries.
func buildHistory(messages []chat.Message, limit int) []HistoryTurn {
	filtered := make([]HistoryTurn, 0, len(messages))
	for _, msg := range messages {
		if msg.ID == chat.GreetingID || msg.Role == chat.RoleSystem {
			continue
		}
		filtered = append(filtered, HistoryTurn{Role: msg.Role, Content: msg.Content})
	}
	if len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered
}
