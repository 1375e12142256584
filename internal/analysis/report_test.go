package analysis

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"spotify-history-tools/internal/history"
)

func TestGenerateReport(t *testing.T) {
	music := []history.PlayEvent{
		event(t, "2024-01-01 10:00", "A", "T1", 180000),
		event(t, "2024-01-01 11:30", "B", "T2", 30000),
	}
	podcast := []history.PlayEvent{
		event(t, "2024-01-02 08:00", "", "Episode 1", 600000),
	}

	report := GenerateReport(music, podcast)

	if report.Metadata.MusicEvents != 2 || report.Metadata.PodcastEvents != 1 {
		t.Errorf("Wrong event counts: %+v", report.Metadata)
	}
	if report.Metadata.CoveredPeriod != "2024-01-01 to 2024-01-02" {
		t.Errorf("Wrong covered period: %q", report.Metadata.CoveredPeriod)
	}
	if len(report.HourlyPattern) != 24 {
		t.Errorf("Expected 24 hourly buckets, got %d", len(report.HourlyPattern))
	}
	if len(report.WeekdayPattern) != 7 {
		t.Errorf("Expected 7 weekday buckets, got %d", len(report.WeekdayPattern))
	}
	if report.TopArtists[0].Key != "A" {
		t.Errorf("Expected A as top artist, got %q", report.TopArtists[0].Key)
	}
}

func TestGenerateReportEmptyInput(t *testing.T) {
	report := GenerateReport(nil, nil)

	if report.Metadata.CoveredPeriod != "" {
		t.Errorf("Expected empty covered period, got %q", report.Metadata.CoveredPeriod)
	}
	if len(report.HourlyPattern) != 24 || len(report.WeekdayPattern) != 7 {
		t.Error("Fixed-bucket summaries must be present even for empty input")
	}
	if len(report.TopArtists) != 0 || len(report.DurationHistogram) != 0 {
		t.Error("Expected empty top-N and histogram for empty input")
	}
}

func TestReportEncodesAsYaml(t *testing.T) {
	music := []history.PlayEvent{
		event(t, "2024-01-01 10:00", "A", "T1", 180000),
	}

	out, err := yaml.Marshal(GenerateReport(music, nil))
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}

	for _, want := range []string{"totals_by_category", "top_artists", "hourly_pattern", "report_metadata"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Encoded report missing %q:\n%s", want, out)
		}
	}
}
