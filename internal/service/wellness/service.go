package wellness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/afyasync/afyasync/backend/internal/model/chat"
	"github.com/afyasync/afyasync/backend/internal/model/profile"
	"github.com/afyasync/afyasync/backend/internal/storage"
)

var (
	ErrIdentityRequired = errors.New("identity is required")
	ErrInvalidMood      = errors.New("mood must be between 1 and 10")
	ErrEntryNotFound    = errors.New("journal entry not found")
)

const (
	moodKeyPrefix    = "wellness:mood:"
	journalKeyPrefix = "wellness:journal:"

	// Hint windows offered to the responder.
	hintMoodCount    = 7
	hintJournalCount = 3
)

// Service persists mood and journal records per identity and derives the
// optional hints handed to the responder.
type Service struct {
	kv storage.KV
	mu sync.Mutex
}

// NewService wires the wellness records to a durable KV.
func NewService(kv storage.KV) *Service {
	return &Service{kv: kv}
}

// AddMood records one mood check-in.
func (s *Service) AddMood(_ context.Context, identity string, entry profile.MoodEntry) error {
	if identity == "" {
		return ErrIdentityRequired
	}
	if entry.Mood < 1 || entry.Mood > 10 {
		return ErrInvalidMood
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := loadList[profile.MoodEntry](s.kv, moodKeyPrefix+identity)
	entries = append(entries, entry)
	return saveList(s.kv, moodKeyPrefix+identity, entries)
}

// Moods returns all recorded mood entries for identity, oldest first.
func (s *Service) Moods(_ context.Context, identity string) ([]profile.MoodEntry, error) {
	if identity == "" {
		return nil, ErrIdentityRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return loadList[profile.MoodEntry](s.kv, moodKeyPrefix+identity), nil
}

// AddJournal records one journal entry and returns it with its assigned ID.
func (s *Service) AddJournal(_ context.Context, identity string, entry profile.JournalEntry) (profile.JournalEntry, error) {
	if identity == "" {
		return profile.JournalEntry{}, ErrIdentityRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := loadList[profile.JournalEntry](s.kv, journalKeyPrefix+identity)
	last := int64(0)
	for _, existing := range entries {
		if existing.ID > last {
			last = existing.ID
		}
	}
	entry.ID = chat.NextID(last)
	entries = append(entries, entry)
	if err := saveList(s.kv, journalKeyPrefix+identity, entries); err != nil {
		return profile.JournalEntry{}, err
	}
	return entry, nil
}

// Journal returns all journal entries for identity, oldest first.
func (s *Service) Journal(_ context.Context, identity string) ([]profile.JournalEntry, error) {
	if identity == "" {
		return nil, ErrIdentityRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return loadList[profile.JournalEntry](s.kv, journalKeyPrefix+identity), nil
}

// DeleteJournal removes one journal entry by ID.
func (s *Service) DeleteJournal(_ context.Context, identity string, id int64) error {
	if identity == "" {
		return ErrIdentityRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := loadList[profile.JournalEntry](s.kv, journalKeyPrefix+identity)
	kept := entries[:0]
	found := false
	for _, entry := range entries {
		if entry.ID == id {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return ErrEntryNotFound
	}
	return saveList(s.kv, journalKeyPrefix+identity, kept)
}

// Clear removes all wellness records for identity.
func (s *Service) Clear(_ context.Context, identity string) error {
	if identity == "" {
		return ErrIdentityRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(moodKeyPrefix + identity); err != nil {
		return fmt.Errorf("failed to clear moods for %s: %w", identity, err)
	}
	if err := s.kv.Delete(journalKeyPrefix + identity); err != nil {
		return fmt.Errorf("failed to clear journal for %s: %w", identity, err)
	}
	return nil
}

// Hints assembles the most recent records into responder hints. Returns nil
// when there is nothing to share.
func (s *Service) Hints(_ context.Context, identity string) *profile.Hints {
	if identity == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moods := loadList[profile.MoodEntry](s.kv, moodKeyPrefix+identity)
	journal := loadList[profile.JournalEntry](s.kv, journalKeyPrefix+identity)
	if len(moods) > hintMoodCount {
		moods = moods[len(moods)-hintMoodCount:]
	}
	if len(journal) > hintJournalCount {
		journal = journal[len(journal)-hintJournalCount:]
	}

	hints := &profile.Hints{RecentMoods: moods, RecentJournal: journal}
	if hints.Empty() {
		return nil
	}
	return hints
}

// loadList reads a JSON array from the KV; unreadable state is logged and
// treated as empty, mirroring the session store's corruption policy.
func loadList[T any](kv storage.KV, key string) []T {
	data, ok, err := kv.Get(key)
	if err != nil {
		log.Printf("[wellness] failed to read %s, treating as empty: %v", key, err)
		return nil
	}
	if !ok {
		return nil
	}

	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("[wellness] corrupt data at %s, resetting: %v", key, err)
		return nil
	}
	return entries
}

func saveList[T any](kv storage.KV, key string, entries []T) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := kv.Set(key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}
