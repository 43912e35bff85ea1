// Package migrations embeds the SQLite schema migrations for the deck
// store.
package migrations

import "embed"

// FS holds the migration files.
//
//go:embed *.sql
var FS embed.FS
