package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"spotify-history-tools/internal/history"
	"spotify-history-tools/internal/store"
)

// Well-known file names inside a Spotify data export.
const (
	musicShardPattern   = "StreamingHistory_music_%d.json"
	podcastShardPattern = "StreamingHistory_podcast_%d.json"
	libraryFile         = "YourLibrary.json"
	wrappedFile         = "Wrapped2024.json"
)

const (
	categoryMusic   = "music"
	categoryPodcast = "podcast"
)

// loadDataset loads both event collections, from the SQLite mirror
// when --database is set and the export directory otherwise.
func loadDataset() (Dataset, error) {
	if dbPath := viper.GetString("database"); dbPath != "" {
		return loadDatasetFromStore(dbPath)
	}
	return loadDatasetFromDir(viper.GetString("data-dir"))
}

func loadDatasetFromDir(dir string) (Dataset, error) {
	music, _, err := loadCategory(dir, musicShardPattern)
	if err != nil {
		return Dataset{}, fmt.Errorf("loading music history: %w", err)
	}
	podcast, _, err := loadCategory(dir, podcastShardPattern)
	if err != nil {
		return Dataset{}, fmt.Errorf("loading podcast history: %w", err)
	}
	return Dataset{Music: music, Podcast: podcast}, nil
}

// loadCategory runs one category through shard discovery and
// normalization. Shard truncation and skipped records are operator
// diagnostics, not failures.
func loadCategory(dir, pattern string) ([]history.PlayEvent, int, error) {
	result := history.LoadSharded(filepath.Join(dir, pattern))
	if result.Truncated != nil {
		logrus.WithError(result.Truncated).Warnf(
			"proceeding with partial data (%d shards loaded)", result.Shards)
	}

	events, stats, err := history.Normalize(result.Records)
	if err != nil {
		return nil, 0, err
	}
	if stats.Skipped() > 0 {
		logrus.Warnf("skipped %d malformed records (%d bad timestamps, %d bad durations)",
			stats.Skipped(), stats.BadTimestamps, stats.BadDurations)
	}
	return events, result.Shards, nil
}

func loadDatasetFromStore(dbPath string) (Dataset, error) {
	db, err := store.New(dbPath)
	if err != nil {
		return Dataset{}, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	music, err := db.ReadPlays(categoryMusic)
	if err != nil {
		return Dataset{}, err
	}
	podcast, err := db.ReadPlays(categoryPodcast)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Music: music, Podcast: podcast}, nil
}
