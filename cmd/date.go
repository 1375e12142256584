package cmd

import (
	"fmt"
	"regexp"
	"time"
)

// Date arguments come in three granularities. Each one parses to a
// half-open range covering the whole year, month, or day.
var dateFormats = []struct {
	pattern *regexp.Regexp
	layout  string
	span    func(time.Time) time.Time
}{
	{regexp.MustCompile(`^\d{4}$`), "2006", func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }},
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "2006-01", func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02", func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }},
}

// parseDateRangeFromArgs turns optional trailing date args into a
// half-open [start, end) range. No args means unbounded. One arg
// covers that year/month/day; two args run from the start of the
// first through the end of the second.
func parseDateRangeFromArgs(args []string) (start time.Time, end time.Time, err error) {
	switch len(args) {
	case 0:
		return

	case 1:
		start, end, err = parseSingleDatestring(args[0])
		return

	case 2:
		start, _, err = parseSingleDatestring(args[0])
		if err != nil {
			return
		}
		_, end, err = parseSingleDatestring(args[1])
		return

	default:
		err = fmt.Errorf("expected at most two date arguments")
		return
	}
}

// parseSingleDatestring parses one date argument and returns the
// range it spans.
func parseSingleDatestring(ds string) (start time.Time, end time.Time, err error) {
	for _, f := range dateFormats {
		if !f.pattern.MatchString(ds) {
			continue
		}
		start, err = time.Parse(f.layout, ds)
		if err != nil {
			err = fmt.Errorf("parsing datestring %q: %w", ds, err)
			return
		}
		end = f.span(start)
		return
	}
	err = fmt.Errorf("invalid date format: %q (want yyyy, yyyy-mm, or yyyy-mm-dd)", ds)
	return
}
