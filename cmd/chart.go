package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"spotify-history-tools/internal/analysis"
	"spotify-history-tools/internal/render"
)

var chartOutDir string

var chartCmd = &cobra.Command{
	Use:   "chart [from] [to (optional)]",
	Short: "Renders the listening summaries as PNG figures",
	Long: `Writes two four-panel figures: overview.png (totals, top artists, daily
activity, top tracks) and patterns.png (hourly, weekday, monthly, durations).`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeCharts(args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartOutDir, "out", "o", ".", "Directory to write the PNG files to")
}

func writeCharts(args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	data, err := loadDataset()
	if err != nil {
		return err
	}
	data = data.Filter(start, end)

	err = writeFigure(filepath.Join(chartOutDir, "overview.png"), func(f *os.File) error {
		return render.RenderOverview(f,
			analysis.TotalsByCategory(data.Music, data.Podcast),
			analysis.TopArtistsByTime(data.Music, 10),
			analysis.DailyActivity(data.Music),
			analysis.TopTracksByPlays(data.Music, 10))
	})
	if err != nil {
		return err
	}

	return writeFigure(filepath.Join(chartOutDir, "patterns.png"), func(f *os.File) error {
		return render.RenderPatterns(f,
			analysis.HourlyDistribution(data.Music),
			analysis.WeekdayDistribution(data.Music),
			analysis.MonthlyTrend(data.Music),
			analysis.DurationHistogram(data.Music, analysis.DefaultHistogramBins))
	})
}

func writeFigure(path string, renderTo func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := renderTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
