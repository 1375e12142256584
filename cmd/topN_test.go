package cmd

import (
	"strings"
	"testing"
	"time"
)

func TestTopArtistsAnalyser(t *testing.T) {
	createTestExport(t)

	data, err := loadDataset()
	if err != nil {
		t.Fatalf("loadDataset: %v", err)
	}

	result, err := TopArtistsAnalyser{Number: 10}.GetResults(data, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}

	output := result.String()
	if !strings.Contains(output, "A") || !strings.Contains(output, "3.0") {
		t.Errorf("Expected A with 3.0 minutes. Got:\n%s", output)
	}
	if !strings.Contains(output, "Found 2 events") {
		t.Errorf("Expected summary with 2 events. Got:\n%s", output)
	}

	// The first data row must be the top artist.
	if result.results[1][0] != "A" {
		t.Errorf("Expected A first, got %q", result.results[1][0])
	}
}

func TestTopArtistsAnalyserLimit(t *testing.T) {
	createTestExport(t)

	data, err := loadDataset()
	if err != nil {
		t.Fatalf("loadDataset: %v", err)
	}

	result, err := TopArtistsAnalyser{Number: 1}.GetResults(data, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}

	// Header plus one row.
	if len(result.results) != 2 {
		t.Errorf("Expected 1 result row, got %d", len(result.results)-1)
	}
	for _, row := range result.results[1:] {
		if row[0] == "B" {
			t.Errorf("Artist B should be cut off:\n%s", result)
		}
	}
}

func TestTopTracksAnalyser(t *testing.T) {
	createTestExport(t)

	data, err := loadDataset()
	if err != nil {
		t.Fatalf("loadDataset: %v", err)
	}

	result, err := TopTracksAnalyser{Number: 10}.GetResults(data, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}

	output := result.String()
	if !strings.Contains(output, "T1") || !strings.Contains(output, "T2") {
		t.Errorf("Expected both tracks. Got:\n%s", output)
	}

	// Podcast events never leak into music summaries.
	if strings.Contains(output, "Episode 1") {
		t.Errorf("Podcast episode leaked into track counts:\n%s", output)
	}
}
