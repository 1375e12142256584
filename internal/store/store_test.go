package store

import (
	"path/filepath"
	"testing"
	"time"

	"spotify-history-tools/internal/history"
)

func createTestDb(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(%s) error: %v", dbPath, err)
	}

	return store
}

func testEvents(t *testing.T) []history.PlayEvent {
	t.Helper()
	end1, _ := time.Parse("2006-01-02 15:04", "2024-01-01 10:00")
	end2, _ := time.Parse("2006-01-02 15:04", "2024-01-01 11:30")
	return []history.PlayEvent{
		history.NewPlayEvent(end1, "A", "T1", 180000),
		history.NewPlayEvent(end2, "B", "T2", 30000),
	}
}

func TestImportAndReadPlays(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	if err := s.ImportPlays("music", testEvents(t), 2); err != nil {
		t.Fatalf("ImportPlays: %v", err)
	}

	events, err := s.ReadPlays("music")
	if err != nil {
		t.Fatalf("ReadPlays: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Track != "T1" || events[1].Track != "T2" {
		t.Errorf("Insertion order not preserved: %+v", events)
	}
	if events[0].Minutes != 3.0 {
		t.Errorf("Derived minutes not recomputed, got %v", events[0].Minutes)
	}
	if events[0].EndTime.Hour() != 10 {
		t.Errorf("Expected hour 10, got %d", events[0].EndTime.Hour())
	}
}

func TestImportReplacesCategory(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	if err := s.ImportPlays("music", testEvents(t), 2); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if err := s.ImportPlays("music", testEvents(t)[:1], 1); err != nil {
		t.Fatalf("second import: %v", err)
	}

	events, err := s.ReadPlays("music")
	if err != nil {
		t.Fatalf("ReadPlays: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected re-import to replace, got %d events", len(events))
	}
}

func TestCategoriesAreDisjoint(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	if err := s.ImportPlays("music", testEvents(t), 2); err != nil {
		t.Fatalf("ImportPlays: %v", err)
	}

	podcast, err := s.ReadPlays("podcast")
	if err != nil {
		t.Fatalf("ReadPlays: %v", err)
	}
	if len(podcast) != 0 {
		t.Errorf("Expected no podcast events, got %d", len(podcast))
	}
}

func TestLastImport(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	_, ok, err := s.LastImport("music")
	if err != nil {
		t.Fatalf("LastImport: %v", err)
	}
	if ok {
		t.Error("Expected no import info before importing")
	}

	if err := s.ImportPlays("music", testEvents(t), 2); err != nil {
		t.Fatalf("ImportPlays: %v", err)
	}

	info, ok, err := s.LastImport("music")
	if err != nil {
		t.Fatalf("LastImport: %v", err)
	}
	if !ok {
		t.Fatal("Expected import info after importing")
	}
	if info.Shards != 2 || info.Events != 2 {
		t.Errorf("Wrong import info: %+v", info)
	}
	if info.ImportedAt.IsZero() {
		t.Error("Expected a non-zero import time")
	}
}
