// Package sqlite provides a SQLite-backed deck store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/deckwright/internal/deck"
	sqlitemigrate "github.com/louisbranch/deckwright/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/deckwright/internal/storage"
	"github.com/louisbranch/deckwright/internal/storage/sqlite/migrations"
)

// Store persists deck records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite deck store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func encodeSlots(slots deck.Slots) (string, error) {
	if slots == nil {
		return "{}", nil
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return "", fmt.Errorf("marshal slots: %w", err)
	}
	return string(data), nil
}

func decodeSlots(raw string) (deck.Slots, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var slots deck.Slots
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, fmt.Errorf("unmarshal slots: %w", err)
	}
	return slots, nil
}

// Put inserts or replaces one deck record.
func (s *Store) Put(ctx context.Context, record deck.Deck) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("deck id is required")
	}
	if strings.TrimSpace(record.InvestigatorCode) == "" {
		return fmt.Errorf("investigator code is required")
	}

	slots, err := encodeSlots(record.Slots)
	if err != nil {
		return err
	}
	sideSlots, err := encodeSlots(record.SideSlots)
	if err != nil {
		return err
	}
	ignoreSlots, err := encodeSlots(record.IgnoreDeckLimitSlots)
	if err != nil {
		return err
	}

	var tabooSetID sql.NullInt64
	if record.TabooSetID != nil {
		tabooSetID = sql.NullInt64{Int64: int64(*record.TabooSetID), Valid: true}
	}
	var xp sql.NullInt64
	if record.XP != nil {
		xp = sql.NullInt64{Int64: int64(*record.XP), Valid: true}
	}

	createdAt := record.CreatedAt
	updatedAt := record.UpdatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO decks (
		   id, name, investigator_code, taboo_set_id,
		   slots, side_slots, ignore_deck_limit_slots, exile_string,
		   description, tags, xp, xp_adjustment, meta,
		   previous_deck_id, next_deck_id, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   investigator_code = excluded.investigator_code,
		   taboo_set_id = excluded.taboo_set_id,
		   slots = excluded.slots,
		   side_slots = excluded.side_slots,
		   ignore_deck_limit_slots = excluded.ignore_deck_limit_slots,
		   exile_string = excluded.exile_string,
		   description = excluded.description,
		   tags = excluded.tags,
		   xp = excluded.xp,
		   xp_adjustment = excluded.xp_adjustment,
		   meta = excluded.meta,
		   previous_deck_id = excluded.previous_deck_id,
		   next_deck_id = excluded.next_deck_id,
		   updated_at = excluded.updated_at`,
		record.ID,
		record.Name,
		record.InvestigatorCode,
		tabooSetID,
		slots,
		sideSlots,
		ignoreSlots,
		record.ExileString,
		record.Description,
		record.Tags,
		xp,
		record.XPAdjustment,
		record.Meta,
		record.PreviousDeckID,
		record.NextDeckID,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("put deck %s: %w", record.ID, err)
	}
	return nil
}

const deckColumns = `id, name, investigator_code, taboo_set_id,
	slots, side_slots, ignore_deck_limit_slots, exile_string,
	description, tags, xp, xp_adjustment, meta,
	previous_deck_id, next_deck_id, created_at, updated_at`

func scanDeck(scan func(dest ...any) error) (deck.Deck, error) {
	var record deck.Deck
	var tabooSetID, xp sql.NullInt64
	var slots, sideSlots, ignoreSlots string
	var createdAt, updatedAt int64

	err := scan(
		&record.ID,
		&record.Name,
		&record.InvestigatorCode,
		&tabooSetID,
		&slots,
		&sideSlots,
		&ignoreSlots,
		&record.ExileString,
		&record.Description,
		&record.Tags,
		&xp,
		&record.XPAdjustment,
		&record.Meta,
		&record.PreviousDeckID,
		&record.NextDeckID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return deck.Deck{}, err
	}

	if tabooSetID.Valid {
		value := int(tabooSetID.Int64)
		record.TabooSetID = &value
	}
	if xp.Valid {
		value := int(xp.Int64)
		record.XP = &value
	}
	if record.Slots, err = decodeSlots(slots); err != nil {
		return deck.Deck{}, err
	}
	if record.SideSlots, err = decodeSlots(sideSlots); err != nil {
		return deck.Deck{}, err
	}
	if record.IgnoreDeckLimitSlots, err = decodeSlots(ignoreSlots); err != nil {
		return deck.Deck{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

// Get returns the deck with the given id.
func (s *Store) Get(ctx context.Context, id string) (deck.Deck, error) {
	if err := ctx.Err(); err != nil {
		return deck.Deck{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+deckColumns+" FROM decks WHERE id = ?", id)
	record, err := scanDeck(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return deck.Deck{}, storage.ErrNotFound
		}
		return deck.Deck{}, fmt.Errorf("get deck %s: %w", id, err)
	}
	return record, nil
}

// List returns every deck, newest update first.
func (s *Store) List(ctx context.Context) ([]deck.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT "+deckColumns+" FROM decks ORDER BY updated_at DESC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	var out []deck.Deck
	for rows.Next() {
		record, err := scanDeck(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decks: %w", err)
	}
	return out, nil
}

// Lineage walks previous-deck links back from id, oldest first.
func (s *Store) Lineage(ctx context.Context, id string) ([]deck.Deck, error) {
	var chain []deck.Deck
	seen := map[string]bool{}
	current := id
	for current != "" && !seen[current] {
		record, err := s.Get(ctx, current)
		if err != nil {
			if err == storage.ErrNotFound && len(chain) > 0 {
				break
			}
			return nil, err
		}
		seen[current] = true
		chain = append(chain, record)
		current = record.PreviousDeckID
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Delete removes the deck with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM decks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete deck %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete deck %s: %w", id, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
