// Package storage defines the persistence contract for deck records. The
// engine never imports this package; it exists for the surrounding tooling
// (CLI, future sync layers) and its implementations live in subpackages.
package storage

import (
	"context"

	apperrors "github.com/louisbranch/deckwright/internal/platform/errors"

	"github.com/louisbranch/deckwright/internal/deck"
)

// ErrNotFound indicates a requested deck record is missing. Callers use it
// to distinguish "no such deck" from transport or corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "deck not found")

// DeckStore persists deck records.
type DeckStore interface {
	// Put inserts or replaces a deck record by id.
	Put(ctx context.Context, record deck.Deck) error
	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (deck.Deck, error)
	// List returns every stored record ordered by update time, newest
	// first.
	List(ctx context.Context) ([]deck.Deck, error)
	// Lineage returns the chain of records linked through previous-deck
	// ids, ending at the record with the given id, oldest first.
	Lineage(ctx context.Context, id string) ([]deck.Deck, error)
	// Delete removes the record with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
