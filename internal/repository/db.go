package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chats (
	conversation_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	messages TEXT NOT NULL DEFAULT '[]',
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chats_user_updated ON chats(user_id, updated_at);
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	user_type TEXT NOT NULL,
	full_name TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Open opens the SQLite database at path and ensures the schema exists.
// CREATE TABLE IF NOT EXISTS leaves a pre-existing legacy chats table (with
// an "id" primary key instead of "conversation_id") untouched; the
// conversation repo resolves the id column at construction.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}
