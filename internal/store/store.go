package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS Play (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  category TEXT NOT NULL,
  end_time DATETIME NOT NULL,
  artist TEXT NOT NULL DEFAULT '',
  track TEXT NOT NULL,
  ms_played INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_play_category ON Play(category, id);

CREATE TABLE IF NOT EXISTS Import (
  category TEXT PRIMARY KEY,
  imported_at DATETIME NOT NULL,
  shards INTEGER NOT NULL,
  events INTEGER NOT NULL
);
`

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
