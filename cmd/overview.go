package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"spotify-history-tools/internal/analysis"
)

var overviewCmd = &cobra.Command{
	Use:   "overview [from] [to (optional)]",
	Short: "Prints the descriptive listening statistics",
	Long: `Prints category totals, top artists, daily activity, and top tracks.
Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'; with no dates the
whole export is covered.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printOverview(os.Stdout, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func overviewAnalysers() []Analyser {
	return []Analyser{
		TotalsAnalyser{},
		TopArtistsAnalyser{Number: 10},
		DailyActivityAnalyser{},
		TopTracksAnalyser{Number: 10},
	}
}

func printOverview(out io.Writer, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	data, err := loadDataset()
	if err != nil {
		return err
	}

	for _, analyser := range overviewAnalysers() {
		result, err := analyser.GetResults(data, start, end)
		if err != nil {
			return fmt.Errorf("%s: %w", analyser.GetName(), err)
		}
		fmt.Fprintf(out, "## %s\n%s\n", analyser.GetName(), result)
	}
	return nil
}

type TotalsAnalyser struct{}

func (TotalsAnalyser) GetName() string {
	return "Total listening time"
}

func (TotalsAnalyser) GetResults(data Dataset, start, end time.Time) (Analysis, error) {
	data = data.Filter(start, end)
	totals := analysis.TotalsByCategory(data.Music, data.Podcast)
	return Analysis{
		results: minutesRows("Category", totals),
		summary: rangeSummary("events", len(data.Music)+len(data.Podcast), start, end),
	}, nil
}

type DailyActivityAnalyser struct{}

func (DailyActivityAnalyser) GetName() string {
	return "Daily music listening activity"
}

func (DailyActivityAnalyser) GetResults(data Dataset, start, end time.Time) (Analysis, error) {
	events := analysis.FilterRange(data.Music, start, end)
	daily := analysis.DailyActivity(events)
	return Analysis{
		results: minutesRows("Date", daily),
		summary: rangeSummary("active days", len(daily), start, end),
	}, nil
}
