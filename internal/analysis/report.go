package analysis

import (
	"fmt"
	"time"

	"spotify-history-tools/internal/history"
)

// GenerateReport assembles every summary into one report structure.
func GenerateReport(music, podcast []history.PlayEvent) *Report {
	report := &Report{
		TotalsByCategory:  TotalsByCategory(music, podcast),
		TopArtists:        TopArtistsByTime(music, 10),
		TopTracks:         TopTracksByPlays(music, 10),
		DailyActivity:     DailyActivity(music),
		HourlyPattern:     HourlyDistribution(music),
		WeekdayPattern:    WeekdayDistribution(music),
		MonthlyTrend:      MonthlyTrend(music),
		DurationHistogram: DurationHistogram(music, DefaultHistogramBins),
	}

	report.Metadata = ReportMetadata{
		GeneratedDate: time.Now().Format("2006-01-02"),
		MusicEvents:   len(music),
		PodcastEvents: len(podcast),
	}
	if first, last, ok := coveredPeriod(music, podcast); ok {
		report.Metadata.CoveredPeriod = fmt.Sprintf("%s to %s",
			first.Format("2006-01-02"), last.Format("2006-01-02"))
	}

	return report
}

func coveredPeriod(collections ...[]history.PlayEvent) (first, last time.Time, ok bool) {
	for _, events := range collections {
		for _, e := range events {
			if !ok || e.EndTime.Before(first) {
				first = e.EndTime
			}
			if !ok || e.EndTime.After(last) {
				last = e.EndTime
			}
			ok = true
		}
	}
	return
}
