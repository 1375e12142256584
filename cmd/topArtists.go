/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"spotify-history-tools/internal/analysis"
)

var topArtistsNumber int
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [from] [to (optional)]",
	Short: "Gets the artists with the most listening time",
	Long:  `Uses the optional date or date range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopArtists(topArtistsNumber, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", 10, "number of results to return")
}

func printTopArtists(numToReturn int, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	data, err := loadDataset()
	if err != nil {
		return err
	}

	out, err := TopArtistsAnalyser{Number: numToReturn}.GetResults(data, start, end)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TopArtistsAnalyser struct {
	Number int
}

func (t TopArtistsAnalyser) GetName() string {
	return "Top artists by listening time"
}

func (t TopArtistsAnalyser) GetResults(data Dataset, start, end time.Time) (Analysis, error) {
	events := analysis.FilterRange(data.Music, start, end)
	top := analysis.TopArtistsByTime(events, t.Number)

	return Analysis{
		results: minutesRows("Artist", top),
		summary: rangeSummary("events", len(events), start, end),
	}, nil
}
