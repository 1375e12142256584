package analysis

// MinutesEntry is one (key, minutes) pair of an ordered summary.
type MinutesEntry struct {
	Key     string  `yaml:"key"`
	Minutes float64 `yaml:"minutes"`
}

// CountEntry is one (key, count) pair of an ordered summary.
type CountEntry struct {
	Key   string `yaml:"key"`
	Count int    `yaml:"count"`
}

// Report is the top-level structure for the listening report.
type Report struct {
	Metadata          ReportMetadata `yaml:"report_metadata"`
	TotalsByCategory  []MinutesEntry `yaml:"totals_by_category"`
	TopArtists        []MinutesEntry `yaml:"top_artists"`
	TopTracks         []CountEntry   `yaml:"top_tracks"`
	DailyActivity     []MinutesEntry `yaml:"daily_activity"`
	HourlyPattern     []MinutesEntry `yaml:"hourly_pattern"`
	WeekdayPattern    []MinutesEntry `yaml:"weekday_pattern"`
	MonthlyTrend      []MinutesEntry `yaml:"monthly_trend"`
	DurationHistogram []CountEntry   `yaml:"duration_histogram"`
}

type ReportMetadata struct {
	GeneratedDate string `yaml:"generated_date"`
	MusicEvents   int    `yaml:"music_events"`
	PodcastEvents int    `yaml:"podcast_events"`
	CoveredPeriod string `yaml:"covered_period,omitempty"`
}
