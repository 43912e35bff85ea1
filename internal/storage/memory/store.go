// Package memory provides an in-memory DeckStore for tests and ephemeral
// CLI runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/storage"
)

// Store keeps deck records in a map. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	decks map[string]deck.Deck
}

// New returns an empty store.
func New() *Store {
	return &Store{decks: map[string]deck.Deck{}}
}

// Put inserts or replaces a record.
func (s *Store) Put(ctx context.Context, record deck.Deck) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[record.ID] = record.Clone()
	return nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (deck.Deck, error) {
	if err := ctx.Err(); err != nil {
		return deck.Deck{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.decks[id]
	if !ok {
		return deck.Deck{}, storage.ErrNotFound
	}
	return record.Clone(), nil
}

// List returns every record, newest update first.
func (s *Store) List(ctx context.Context) ([]deck.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]deck.Deck, 0, len(s.decks))
	for _, record := range s.decks {
		out = append(out, record.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Lineage walks previous-deck links back from id, oldest first.
func (s *Store) Lineage(ctx context.Context, id string) ([]deck.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chain []deck.Deck
	seen := map[string]bool{}
	current := id
	for current != "" && !seen[current] {
		record, ok := s.decks[current]
		if !ok {
			if len(chain) == 0 {
				return nil, storage.ErrNotFound
			}
			break
		}
		seen[current] = true
		chain = append(chain, record.Clone())
		current = record.PreviousDeckID
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.decks, id)
	return nil
}
