package store

import (
	"fmt"
	"time"

	"spotify-history-tools/internal/history"
)

// ImportPlays replaces one category's plays with the given events,
// preserving their order. The replace and the import bookkeeping
// happen in one transaction so a failed import leaves the previous
// data intact.
func (s *Store) ImportPlays(category string, events []history.PlayEvent, shards int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM Play WHERE category = ?", category); err != nil {
		return fmt.Errorf("clearing %s plays: %w", category, err)
	}

	insert, err := tx.Prepare(
		"INSERT INTO Play (category, end_time, artist, track, ms_played) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	for _, e := range events {
		if _, err := insert.Exec(category, e.EndTime, e.Artist, e.Track, e.MsPlayed); err != nil {
			return fmt.Errorf("inserting play: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO Import (category, imported_at, shards, events) VALUES (?, ?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET imported_at = excluded.imported_at,
			shards = excluded.shards, events = excluded.events`,
		category, time.Now(), shards, len(events))
	if err != nil {
		return fmt.Errorf("recording import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}
