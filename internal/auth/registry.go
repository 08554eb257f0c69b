package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry issues and tracks the opaque identities that key all per-user
// state. It stands in for the product's external identity provider: the
// rest of the backend only ever sees the opaque string.
type Registry struct {
	mu     sync.RWMutex
	active map[string]time.Time
}

// NewRegistry returns an empty identity registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[string]time.Time)}
}

// IssueAnonymous mints a new anonymous identity.
func (r *Registry) IssueAnonymous() string {
	identity := uuid.NewString()
	r.mu.Lock()
	r.active[identity] = time.Now().UTC()
	r.mu.Unlock()
	return identity
}

// Valid reports whether identity is currently active. The conversation
// pipeline consults this after its responder call so replies that land
// after logout are discarded.
func (r *Registry) Valid(identity string) bool {
	if identity == "" {
		return false
	}
	r.mu.RLock()
	_, ok := r.active[identity]
	r.mu.RUnlock()
	return ok
}

// Revoke removes identity from the active set.
func (r *Registry) Revoke(identity string) {
	r.mu.Lock()
	delete(r.active, identity)
	r.mu.Unlock()
}
