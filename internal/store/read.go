package store

import (
	"database/sql"
	"fmt"
	"time"

	"spotify-history-tools/internal/history"
)

// ReadPlays returns one category's plays in insertion order, with
// derived fields recomputed.
func (s *Store) ReadPlays(category string) ([]history.PlayEvent, error) {
	rows, err := s.db.Query(
		"SELECT end_time, artist, track, ms_played FROM Play WHERE category = ? ORDER BY id",
		category)
	if err != nil {
		return nil, fmt.Errorf("querying %s plays: %w", category, err)
	}
	defer rows.Close()

	var events []history.PlayEvent
	for rows.Next() {
		var end time.Time
		var artist, track string
		var msPlayed int64
		if err := rows.Scan(&end, &artist, &track, &msPlayed); err != nil {
			return nil, fmt.Errorf("scanning play: %w", err)
		}
		events = append(events, history.NewPlayEvent(end.UTC(), artist, track, msPlayed))
	}
	return events, rows.Err()
}

// ImportInfo describes the last import of one category.
type ImportInfo struct {
	ImportedAt time.Time
	Shards     int
	Events     int
}

// LastImport reports when a category was last imported. A category
// that was never imported returns ok == false, not an error.
func (s *Store) LastImport(category string) (ImportInfo, bool, error) {
	var info ImportInfo
	err := s.db.QueryRow(
		"SELECT imported_at, shards, events FROM Import WHERE category = ?",
		category).Scan(&info.ImportedAt, &info.Shards, &info.Events)
	if err == sql.ErrNoRows {
		return ImportInfo{}, false, nil
	}
	if err != nil {
		return ImportInfo{}, false, fmt.Errorf("querying import info: %w", err)
	}
	return info, true, nil
}
