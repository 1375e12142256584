package analysis

import (
	"fmt"
	"sort"
	"time"

	"spotify-history-tools/internal/history"
)

// Plays under this many minutes count as skips and are excluded from
// the duration histogram.
const skipThresholdMinutes = 0.1

// DefaultHistogramBins matches the bin count of the duration
// histogram in the original charts.
const DefaultHistogramBins = 30

const (
	dateKeyLayout  = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// TotalsByCategory sums listening time per content category, in a
// fixed category order.
func TotalsByCategory(music, podcast []history.PlayEvent) []MinutesEntry {
	return []MinutesEntry{
		{Key: "Music", Minutes: sumMinutes(music)},
		{Key: "Podcasts", Minutes: sumMinutes(podcast)},
	}
}

// TopArtistsByTime returns the n artists with the most listening
// time, descending. Ties keep first-seen order.
func TopArtistsByTime(events []history.PlayEvent, n int) []MinutesEntry {
	entries := sumMinutesBy(events, func(e history.PlayEvent) string { return e.Artist })
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Minutes > entries[j].Minutes
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// TopTracksByPlays returns the n most-played tracks by event count,
// descending. Ties keep first-seen order.
func TopTracksByPlays(events []history.PlayEvent, n int) []CountEntry {
	seen := make(map[string]int)
	var entries []CountEntry
	for _, e := range events {
		if i, ok := seen[e.Track]; ok {
			entries[i].Count++
			continue
		}
		seen[e.Track] = len(entries)
		entries = append(entries, CountEntry{Key: e.Track, Count: 1})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// DailyActivity sums listening time per calendar day, chronological.
func DailyActivity(events []history.PlayEvent) []MinutesEntry {
	entries := sumMinutesBy(events, func(e history.PlayEvent) string {
		return e.Date.Format(dateKeyLayout)
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// MonthlyTrend sums listening time per year-month, chronological.
func MonthlyTrend(events []history.PlayEvent) []MinutesEntry {
	entries := sumMinutesBy(events, func(e history.PlayEvent) string {
		return e.EndTime.Format(monthKeyLayout)
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// HourlyDistribution sums listening time per hour of day. All 24
// buckets are present even when empty.
func HourlyDistribution(events []history.PlayEvent) []MinutesEntry {
	var byHour [24]float64
	for _, e := range events {
		byHour[e.EndTime.Hour()] += e.Minutes
	}
	entries := make([]MinutesEntry, 24)
	for h := range byHour {
		entries[h] = MinutesEntry{Key: fmt.Sprintf("%02d", h), Minutes: byHour[h]}
	}
	return entries
}

// weekOrder lays out buckets Monday-first, unlike time.Weekday which
// starts the week on Sunday.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayDistribution sums listening time per weekday in canonical
// Monday-first order. All 7 buckets are present even when empty.
func WeekdayDistribution(events []history.PlayEvent) []MinutesEntry {
	byDay := make(map[time.Weekday]float64, 7)
	for _, e := range events {
		byDay[e.EndTime.Weekday()] += e.Minutes
	}
	entries := make([]MinutesEntry, 0, 7)
	for _, day := range weekOrder {
		entries = append(entries, MinutesEntry{Key: day.String(), Minutes: byDay[day]})
	}
	return entries
}

// DurationHistogram buckets play durations into bins equal-width
// bins, excluding plays at or below the skip threshold. The bins span
// the range of the remaining durations; with no qualifying events the
// result is empty.
func DurationHistogram(events []history.PlayEvent, bins int) []CountEntry {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	var durations []float64
	for _, e := range events {
		if e.Minutes > skipThresholdMinutes {
			durations = append(durations, e.Minutes)
		}
	}
	if len(durations) == 0 {
		return nil
	}

	min, max := durations[0], durations[0]
	for _, d := range durations[1:] {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	if min == max {
		// Degenerate range: one bin holds everything.
		return []CountEntry{{
			Key:   fmt.Sprintf("%.1f-%.1f", min, max),
			Count: len(durations),
		}}
	}

	width := (max - min) / float64(bins)
	counts := make([]int, bins)
	for _, d := range durations {
		i := int((d - min) / width)
		if i >= bins { // d == max lands past the last bin
			i = bins - 1
		}
		counts[i]++
	}

	entries := make([]CountEntry, bins)
	for i, c := range counts {
		lo := min + float64(i)*width
		entries[i] = CountEntry{
			Key:   fmt.Sprintf("%.1f-%.1f", lo, lo+width),
			Count: c,
		}
	}
	return entries
}

// FilterRange restricts events to those ending in [start, end). Zero
// bounds are open on that side.
func FilterRange(events []history.PlayEvent, start, end time.Time) []history.PlayEvent {
	if start.IsZero() && end.IsZero() {
		return events
	}
	var out []history.PlayEvent
	for _, e := range events {
		if !start.IsZero() && e.EndTime.Before(start) {
			continue
		}
		if !end.IsZero() && !e.EndTime.Before(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func sumMinutes(events []history.PlayEvent) float64 {
	var total float64
	for _, e := range events {
		total += e.Minutes
	}
	return total
}

// sumMinutesBy groups events by key, preserving first-seen order of
// the keys so later sorts can break ties stably.
func sumMinutesBy(events []history.PlayEvent, key func(history.PlayEvent) string) []MinutesEntry {
	seen := make(map[string]int)
	var entries []MinutesEntry
	for _, e := range events {
		k := key(e)
		if i, ok := seen[k]; ok {
			entries[i].Minutes += e.Minutes
			continue
		}
		seen[k] = len(entries)
		entries = append(entries, MinutesEntry{Key: k, Minutes: e.Minutes})
	}
	return entries
}
