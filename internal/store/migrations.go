package store

import (
	"database/sql"
	"fmt"
)

// schema is the current shape of the contacts table. The timestamp default
// is a safety net; Create always stamps created_at explicitly.
const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// migration adds one column to an existing table.
type migration struct {
	table  string
	column string
	def    string
}

// pendingMigrations lists the columns that older database files may lack.
// Migrations are additive only: existing rows are never discarded.
var pendingMigrations = []migration{
	{"contacts", "company", "TEXT NOT NULL DEFAULT ''"},
	{"contacts", "tags", "TEXT NOT NULL DEFAULT ''"},
	{"contacts", "notes", "TEXT NOT NULL DEFAULT ''"},
}

// ensureSchema creates the contacts table if absent and brings an existing
// file up to the current column set. Idempotent.
func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	for _, m := range pendingMigrations {
		if columnExists(db, m.table, m.column) {
			continue
		}
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.column, m.def)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("add column %s.%s: %w", m.table, m.column, err)
		}
	}
	return nil
}

// columnExists checks for a column using PRAGMA table_info.
func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var cid, notnull, pk int
		var name, ctype string
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
