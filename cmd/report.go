package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"spotify-history-tools/internal/analysis"
)

var reportCmd = &cobra.Command{
	Use:   "report [from] [to (optional)]",
	Short: "Generates a full listening report as YAML",
	Long: `Writes every summary (totals, top artists and tracks, daily, hourly,
weekly, and monthly distributions, play-duration histogram) as one YAML
document on stdout.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := runReport(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	data, err := loadDataset()
	if err != nil {
		return err
	}
	data = data.Filter(start, end)

	report := analysis.GenerateReport(data.Music, data.Podcast)

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	err = encoder.Encode(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return encoder.Close()
}
