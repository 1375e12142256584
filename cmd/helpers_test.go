package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// createTestExport writes a minimal export directory (two music
// shards, one podcast shard, both collaborator files) and points the
// data-dir setting at it.
func createTestExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		fmt.Sprintf(musicShardPattern, 0):   `[{"endTime": "2024-01-01 10:00", "artistName": "A", "trackName": "T1", "msPlayed": 180000}]`,
		fmt.Sprintf(musicShardPattern, 1):   `[{"endTime": "2024-01-01 11:30", "artistName": "B", "trackName": "T2", "msPlayed": 30000}]`,
		fmt.Sprintf(podcastShardPattern, 0): `[{"endTime": "2024-01-02 08:00", "trackName": "Episode 1", "msPlayed": 600000}]`,
		libraryFile:                         `{"tracks": []}`,
		wrappedFile:                         `{}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	viper.Set("data-dir", dir)
	viper.Set("database", "")
	t.Cleanup(func() {
		viper.Set("data-dir", ".")
		viper.Set("database", "")
	})

	return dir
}
