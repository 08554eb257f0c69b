package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/afyasync/afyasync/backend/internal/locale"
	"github.com/afyasync/afyasync/backend/internal/model/chat"
	"github.com/afyasync/afyasync/backend/internal/storage"
)

var ErrIdentityRequired = errors.New("identity is required")

// DefaultRetentionLimit matches the product's persisted transcript ceiling.
const DefaultRetentionLimit = 50

const keyPrefix = "chat:session:"

// Store owns the per-identity message log. It keeps a working copy in
// memory and persists the most-recent-K view to the durable KV under a key
// namespaced by identity, so no two identities ever touch the same slot.
// Switching identities is just a lookup under the new key; nothing from the
// previous identity leaks into the new working session.
type Store struct {
	kv        storage.KV
	retention int
	language  string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	cache map[string][]chat.Message
}

// NewStore wires the store to a durable KV. retention bounds how many
// messages survive an append; language picks the synthesized greeting.
func NewStore(kv storage.KV, retention int, language string) *Store {
	if retention <= 0 {
		retention = DefaultRetentionLimit
	}
	return &Store{
		kv:        kv,
		retention: retention,
		language:  language,
		locks:     make(map[string]*sync.Mutex),
		cache:     make(map[string][]chat.Message),
	}
}

// lockFor serializes all mutation under one identity. The runtime is
// multi-threaded, so the single-writer discipline the UI provides is backed
// by an explicit per-identity mutex here.
func (s *Store) lockFor(identity string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[identity]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[identity] = lock
	}
	return lock
}

func storageKey(identity string) string {
	return keyPrefix + identity
}

// Load returns the session for identity, reading durable state on first
// access. Absent or unreadable state yields a fresh session holding only
// the greeting; corruption is logged and abandoned, never surfaced.
func (s *Store) Load(_ context.Context, identity string) (chat.Session, error) {
	if identity == "" {
		return chat.Session{}, ErrIdentityRequired
	}

	lock := s.lockFor(identity)
	lock.Lock()
	defer lock.Unlock()

	messages := s.loadLocked(identity)
	return chat.Session{Identity: identity, Messages: copyMessages(messages)}, nil
}

// Append pushes message onto identity's session and persists the truncated
// most-recent view. Truncation only ever drops the oldest excess entries.
func (s *Store) Append(_ context.Context, identity string, message chat.Message) error {
	if identity == "" {
		return ErrIdentityRequired
	}

	lock := s.lockFor(identity)
	lock.Lock()
	defer lock.Unlock()

	messages := append(s.loadLocked(identity), message)
	if len(messages) > s.retention {
		messages = messages[len(messages)-s.retention:]
	}
	s.cache[identity] = messages

	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal session for %s: %w", identity, err)
	}
	if err := s.kv.Set(storageKey(identity), data); err != nil {
		return fmt.Errorf("failed to persist session for %s: %w", identity, err)
	}
	return nil
}

// Clear removes all durable and in-memory state for identity. Other
// identities are untouched.
func (s *Store) Clear(_ context.Context, identity string) error {
	if identity == "" {
		return ErrIdentityRequired
	}

	lock := s.lockFor(identity)
	lock.Lock()
	defer lock.Unlock()

	delete(s.cache, identity)
	if err := s.kv.Delete(storageKey(identity)); err != nil {
		return fmt.Errorf("failed to clear session for %s: %w", identity, err)
	}
	return nil
}

// loadLocked resolves the working message slice for identity. Callers hold
// the identity lock.
func (s *Store) loadLocked(identity string) []chat.Message {
	if messages, ok := s.cache[identity]; ok {
		return messages
	}

	data, ok, err := s.kv.Get(storageKey(identity))
	if err != nil {
		log.Printf("[session] failed to read stored session for %s, starting fresh: %v", identity, err)
	}

	var messages []chat.Message
	if err == nil && ok {
		if unmarshalErr := json.Unmarshal(data, &messages); unmarshalErr != nil {
			log.Printf("[session] corrupt stored session for %s, resetting: %v", identity, unmarshalErr)
			messages = nil
		}
	}

	if len(messages) == 0 {
		messages = []chat.Message{s.greeting()}
	}

	s.cache[identity] = messages
	return messages
}

func (s *Store) greeting() chat.Message {
	return chat.Message{
		ID:        chat.GreetingID,
		Role:      chat.RoleAssistant,
		Content:   locale.Greeting(s.language),
		CreatedAt: time.Now().UTC(),
	}
}

func copyMessages(messages []chat.Message) []chat.Message {
	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied
}
