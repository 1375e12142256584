package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeShard(t *testing.T, dir string, index int, content string) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("StreamingHistory_music_%d.json", index))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing shard %d: %v", index, err)
	}
}

func shardPattern(dir string) string {
	return filepath.Join(dir, "StreamingHistory_music_%d.json")
}

func TestLoadShardedConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0, `[{"endTime": "2024-01-01 10:00", "artistName": "A", "trackName": "T1", "msPlayed": 180000}]`)
	writeShard(t, dir, 1, `[{"endTime": "2024-01-01 11:30", "artistName": "B", "trackName": "T2", "msPlayed": 30000}]`)

	result := LoadSharded(shardPattern(dir))
	if result.Truncated != nil {
		t.Fatalf("unexpected truncation: %v", result.Truncated)
	}
	if result.Shards != 2 {
		t.Errorf("Expected 2 shards, got %d", result.Shards)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(result.Records))
	}
	if result.Records[0].TrackName != "T1" || result.Records[1].TrackName != "T2" {
		t.Errorf("Records out of shard order: %+v", result.Records)
	}
}

func TestLoadShardedMissingShardZero(t *testing.T) {
	dir := t.TempDir()

	result := LoadSharded(shardPattern(dir))
	if result.Truncated != nil {
		t.Fatalf("missing shard 0 should not be an error, got %v", result.Truncated)
	}
	if len(result.Records) != 0 || result.Shards != 0 {
		t.Errorf("Expected empty result, got %d records from %d shards",
			len(result.Records), result.Shards)
	}
}

func TestLoadShardedStopsAtGap(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0, `[{"endTime": "2024-01-01 10:00", "trackName": "T1", "msPlayed": 1000}]`)
	// Shard 1 is missing; shard 2 must never be read.
	writeShard(t, dir, 2, `[{"endTime": "2024-01-02 10:00", "trackName": "T3", "msPlayed": 1000}]`)

	result := LoadSharded(shardPattern(dir))
	if result.Truncated != nil {
		t.Fatalf("a gap is normal termination, got %v", result.Truncated)
	}
	if len(result.Records) != 1 {
		t.Fatalf("Expected only shard 0's record, got %d records", len(result.Records))
	}
	if result.Records[0].TrackName != "T1" {
		t.Errorf("Expected record from shard 0, got %q", result.Records[0].TrackName)
	}
}

func TestLoadShardedGapBeforeShardOne(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 1, `[{"endTime": "2024-01-01 10:00", "trackName": "T2", "msPlayed": 1000}]`)

	result := LoadSharded(shardPattern(dir))
	if len(result.Records) != 0 {
		t.Errorf("shard 1 must be unreachable without shard 0, got %d records", len(result.Records))
	}
}

func TestLoadShardedKeepsDataBeforeParseError(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0, `[{"endTime": "2024-01-01 10:00", "trackName": "T1", "msPlayed": 1000}]`)
	writeShard(t, dir, 1, `{not json`)
	writeShard(t, dir, 2, `[{"endTime": "2024-01-03 10:00", "trackName": "T3", "msPlayed": 1000}]`)

	result := LoadSharded(shardPattern(dir))
	if result.Truncated == nil {
		t.Fatal("Expected truncation diagnostic for malformed shard 1")
	}
	if !errors.Is(result.Truncated, ErrParse) {
		t.Errorf("Expected ErrParse, got %v", result.Truncated)
	}
	if len(result.Records) != 1 || result.Shards != 1 {
		t.Errorf("Expected shard 0's data to survive, got %d records from %d shards",
			len(result.Records), result.Shards)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.Is(err, ErrParse) {
		t.Errorf("Expected ErrParse, got %v", err)
	}
}

func TestLoadOpaque(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "YourLibrary.json")
	if err := os.WriteFile(path, []byte(`{"tracks": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	raw, err := LoadOpaque(path)
	if err != nil {
		t.Fatalf("LoadOpaque: %v", err)
	}
	if len(raw) == 0 {
		t.Error("Expected raw content")
	}

	_, err = LoadOpaque(filepath.Join(dir, "Wrapped2024.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
