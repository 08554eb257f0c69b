package storage

import (
	"errors"
	"fmt"
	"log"

	"github.com/cockroachdb/pebble"
)

// Pebble wraps a pebble.DB behind the KV capability.
type Pebble struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) a pebble database at path.
func OpenPebble(path string) (*Pebble, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble db at %s: %w", path, err)
	}
	log.Printf("[storage] pebble opened at %s", path)
	return &Pebble{db: db}, nil
}

func (p *Pebble) Get(key string) ([]byte, bool, error) {
	value, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	if err := closer.Close(); err != nil {
		return nil, false, err
	}
	return copied, true, nil
}

func (p *Pebble) Set(key string, value []byte) error {
	return p.db.Set([]byte(key), value, pebble.Sync)
}

func (p *Pebble) Delete(key string) error {
	return p.db.Delete([]byte(key), pebble.Sync)
}

func (p *Pebble) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
