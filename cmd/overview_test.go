package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintOverview(t *testing.T) {
	createTestExport(t)

	var out bytes.Buffer
	if err := printOverview(&out, nil); err != nil {
		t.Fatalf("printOverview failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Total listening time",
		"Top artists by listening time",
		"Daily music listening activity",
		"Top tracks by play count",
		"Music",
		"Podcasts",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q. Got:\n%s", want, output)
		}
	}

	// 3.0 + 0.5 music minutes across the two shards.
	if !strings.Contains(output, "3.5") {
		t.Errorf("Output missing music total 3.5. Got:\n%s", output)
	}
	// 600000 ms of podcast.
	if !strings.Contains(output, "10.0") {
		t.Errorf("Output missing podcast total 10.0. Got:\n%s", output)
	}
}

func TestPrintOverviewDateFilter(t *testing.T) {
	createTestExport(t)

	var out bytes.Buffer
	// No 2023 data: all totals are zero.
	if err := printOverview(&out, []string{"2023"}); err != nil {
		t.Fatalf("printOverview failed: %v", err)
	}

	if !strings.Contains(out.String(), "Found 0 events from 2023-01-01 to 2024-01-01") {
		t.Errorf("Expected empty 2023 range. Got:\n%s", out.String())
	}
}

func TestPrintPatterns(t *testing.T) {
	createTestExport(t)
	histogramBins = 10

	var out bytes.Buffer
	if err := printPatterns(&out, nil); err != nil {
		t.Fatalf("printPatterns failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Listening by hour of day",
		"Listening by day of week",
		"Monthly listening trend",
		"Distribution of play durations",
		"Monday",
		"Sunday",
		"2024-01",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q. Got:\n%s", want, output)
		}
	}
}
