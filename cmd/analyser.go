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
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"spotify-history-tools/internal/analysis"
	"spotify-history-tools/internal/history"
)

// Dataset holds the loaded event collections. The two categories are
// disjoint and every analyser reads them without mutation.
type Dataset struct {
	Music   []history.PlayEvent
	Podcast []history.PlayEvent
}

// Filter restricts both collections to [start, end).
func (d Dataset) Filter(start, end time.Time) Dataset {
	return Dataset{
		Music:   analysis.FilterRange(d.Music, start, end),
		Podcast: analysis.FilterRange(d.Podcast, start, end),
	}
}

type Analysis struct {
	results [][]string
	summary string
}

type Analyser interface {
	GetResults(data Dataset, start, end time.Time) (Analysis, error)

	GetName() string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

func minutesRows(keyHeader string, entries []analysis.MinutesEntry) [][]string {
	rows := [][]string{{keyHeader, "Minutes"}}
	for _, e := range entries {
		rows = append(rows, []string{e.Key, formatMinutes(e.Minutes)})
	}
	return rows
}

func countRows(keyHeader, valueHeader string, entries []analysis.CountEntry) [][]string {
	rows := [][]string{{keyHeader, valueHeader}}
	for _, e := range entries {
		rows = append(rows, []string{e.Key, strconv.Itoa(e.Count)})
	}
	return rows
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', 1, 64)
}

func rangeSummary(what string, n int, start, end time.Time) string {
	if start.IsZero() && end.IsZero() {
		return fmt.Sprintf("Found %d %s\n", n, what)
	}
	const dateFormat = "2006-01-02"
	return fmt.Sprintf("Found %d %s from %s to %s\n",
		n, what, start.Format(dateFormat), end.Format(dateFormat))
}
