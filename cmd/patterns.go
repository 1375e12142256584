package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"spotify-history-tools/internal/analysis"
)

var histogramBins int

var patternsCmd = &cobra.Command{
	Use:   "patterns [from] [to (optional)]",
	Short: "Prints time-of-day and trend listening patterns",
	Long: `Prints hourly, day-of-week, and monthly listening distributions plus a
histogram of play durations. Plays of 6 seconds or less count as skips and are
excluded from the histogram.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printPatterns(os.Stdout, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.Flags().IntVar(&histogramBins, "bins", analysis.DefaultHistogramBins,
		"Number of bins in the play-duration histogram")
}

func patternAnalysers() []Analyser {
	return []Analyser{
		HourlyAnalyser{},
		WeekdayAnalyser{},
		MonthlyAnalyser{},
		DurationsAnalyser{Bins: histogramBins},
	}
}

func printPatterns(out io.Writer, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	data, err := loadDataset()
	if err != nil {
		return err
	}

	for _, analyser := range patternAnalysers() {
		result, err := analyser.GetResults(data, start, end)
		if err != nil {
			return fmt.Errorf("%s: %w", analyser.GetName(), err)
		}
		fmt.Fprintf(out, "## %s\n%s\n", analyser.GetName(), result)
	}
	return nil
}

type HourlyAnalyser struct{}

func (HourlyAnalyser) GetName() string {
	return "Listening by hour of day"
}

func (HourlyAnalyser) GetResults(data Dataset, start, end time.Time) (Analysis, error) {
	events := analysis.FilterRange(data.Music, start, end)
	return Analysis{
		results: minutesRows("Hour", analysis.HourlyDistribution(events)),
		summary: rangeSummary("events", len(events), start, end),
	}, nil
}

type WeekdayAnalyser struct{}

func (WeekdayAnalyser) GetName() string {
	return "Listening by day of week"
}

func (WeekdayAnalyser) GetResults(data Dataset, start, end time.Time) (Analysis, error) {
	events := analysis.FilterRange(data.Music, start, end)
	return Analysis{
		results: minutesRows("Day", analysis.WeekdayDistribution(events)),
		summary: rangeSummary("events", len(events), start, end),
	}, nil
}

type MonthlyAnalyser struct{}

func (MonthlyAnalyser) GetName() string {
	return "Monthly listening trend"
}

func (MonthlyAnalyser) GetResults(data Dataset, start, end time.Time) (Analysis, error) {
	events := analysis.FilterRange(data.Music, start, end)
	monthly := analysis.MonthlyTrend(events)
	return Analysis{
		results: minutesRows("Month", monthly),
		summary: rangeSummary("active months", len(monthly), start, end),
	}, nil
}

type DurationsAnalyser struct {
	Bins int
}

func (DurationsAnalyser) GetName() string {
	return "Distribution of play durations"
}

func (d DurationsAnalyser) GetResults(data Dataset, start, end time.Time) (Analysis, error) {
	events := analysis.FilterRange(data.Music, start, end)
	histogram := analysis.DurationHistogram(events, d.Bins)
	counted := 0
	for _, bin := range histogram {
		counted += bin.Count
	}
	return Analysis{
		results: countRows("Minutes", "Plays", histogram),
		summary: fmt.Sprintf("Counted %d plays, excluded %d skips\n", counted, len(events)-counted),
	}, nil
}
