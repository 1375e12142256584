package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"spotify-history-tools/internal/analysis"
)

const (
	panelWidth  = 640
	panelHeight = 480
)

// Figures are 2x2 grids of panels, matching the original report
// layout. go-chart renders one chart per image, so each panel is
// rendered separately and composited onto a single canvas.

// RenderOverview writes the descriptive-stats figure: category
// totals, top artists, daily activity, and top tracks.
func RenderOverview(w io.Writer, totals, topArtists, daily []analysis.MinutesEntry, topTracks []analysis.CountEntry) error {
	panels := [4]renderable{
		minutesBar("Total Listening Time (minutes)", totals),
		minutesBar("Top Artists by Listening Time", topArtists),
		minutesSeries("Daily Listening Activity", daily, "2006-01-02"),
		countBar("Top Tracks by Play Count", topTracks),
	}
	return renderFigure(w, panels)
}

// RenderPatterns writes the listening-patterns figure: hourly,
// weekday, monthly, and play-duration distributions.
func RenderPatterns(w io.Writer, hourly, weekday, monthly []analysis.MinutesEntry, durations []analysis.CountEntry) error {
	panels := [4]renderable{
		minutesBar("Listening by Hour of Day", hourly),
		minutesBar("Listening by Day of Week", weekday),
		minutesSeries("Monthly Listening Trend", monthly, "2006-01"),
		countBar("Distribution of Play Durations", durations),
	}
	return renderFigure(w, panels)
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func minutesBar(title string, entries []analysis.MinutesEntry) renderable {
	if len(entries) == 0 {
		return nil
	}
	bars := make([]chart.Value, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		bars[i] = chart.Value{Label: e.Key, Value: e.Minutes}
		values[i] = e.Minutes
	}
	return &chart.BarChart{
		Title:    title,
		Width:    panelWidth,
		Height:   panelHeight,
		BarWidth: barWidth(len(bars)),
		YAxis:    yAxis(values),
		Bars:     bars,
	}
}

func countBar(title string, entries []analysis.CountEntry) renderable {
	if len(entries) == 0 {
		return nil
	}
	bars := make([]chart.Value, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		bars[i] = chart.Value{Label: e.Key, Value: float64(e.Count)}
		values[i] = float64(e.Count)
	}
	return &chart.BarChart{
		Title:    title,
		Width:    panelWidth,
		Height:   panelHeight,
		BarWidth: barWidth(len(bars)),
		YAxis:    yAxis(values),
		Bars:     bars,
	}
}

// yAxis pins the value axis when every value is equal. go-chart
// refuses a zero data range, and the fixed-size summaries (hourly,
// weekday, totals) are legitimately all-zero for an empty dataset.
func yAxis(values []float64) chart.YAxis {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max > min {
		return chart.YAxis{}
	}
	if max < 1 {
		max = 1
	}
	return chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: max}}
}

// minutesSeries draws a time series of summed minutes. Keys must be
// chronological strings in the given layout. A continuous series
// needs at least two points, so sparser data falls back to bars.
func minutesSeries(title string, entries []analysis.MinutesEntry, layout string) renderable {
	if len(entries) < 2 {
		return minutesBar(title, entries)
	}

	xs := make([]time.Time, len(entries))
	ys := make([]float64, len(entries))
	for i, e := range entries {
		t, err := time.Parse(layout, e.Key)
		if err != nil {
			return minutesBar(title, entries)
		}
		xs[i] = t
		ys[i] = e.Minutes
	}

	return &chart.Chart{
		Title:  title,
		Width:  panelWidth,
		Height: panelHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: yAxis(ys),
		Series: []chart.Series{
			chart.TimeSeries{XValues: xs, YValues: ys},
		},
	}
}

// barWidth keeps dense bar charts (24 hourly buckets, 30 histogram
// bins) inside the panel.
func barWidth(n int) int {
	w := (panelWidth - 100) / n
	if w > 60 {
		w = 60
	}
	if w < 4 {
		w = 4
	}
	return w
}

func renderFigure(w io.Writer, panels [4]renderable) error {
	canvas := image.NewRGBA(image.Rect(0, 0, 2*panelWidth, 2*panelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, panel := range panels {
		if panel == nil {
			continue
		}
		var buf bytes.Buffer
		if err := panel.Render(chart.PNG, &buf); err != nil {
			return fmt.Errorf("rendering panel %d: %w", i, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("decoding panel %d: %w", i, err)
		}
		offset := image.Pt((i%2)*panelWidth, (i/2)*panelHeight)
		draw.Draw(canvas, img.Bounds().Add(offset), img, image.Point{}, draw.Src)
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("encoding figure: %w", err)
	}
	return nil
}
