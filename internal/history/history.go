package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Error categories for export loading and normalization. Shard
// exhaustion is not an error; see LoadSharded.
var (
	ErrNotFound           = errors.New("file not found")
	ErrParse              = errors.New("malformed file")
	ErrSchema             = errors.New("schema violation")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// endTimeLayout is the timestamp format Spotify uses in the basic
// streaming-history export. Timezone-naive, minute resolution.
const endTimeLayout = "2006-01-02 15:04"

// RawPlay is one record as it appears in a StreamingHistory_*.json
// shard. Podcast shards carry no artistName.
type RawPlay struct {
	EndTime    string `json:"endTime"`
	ArtistName string `json:"artistName"`
	TrackName  string `json:"trackName"`
	MsPlayed   int64  `json:"msPlayed"`
}

// PlayEvent is a normalized play record. Date and Minutes are derived
// once at normalization time since every aggregation reads them.
type PlayEvent struct {
	EndTime  time.Time
	Artist   string
	Track    string
	MsPlayed int64
	Date     time.Time
	Minutes  float64
}

// NormalizeStats counts records dropped during normalization, by
// reason. The skip policy is uniform: a bad record never aborts the
// run, it is counted and logged.
type NormalizeStats struct {
	BadTimestamps int
	BadDurations  int
}

func (s NormalizeStats) Skipped() int {
	return s.BadTimestamps + s.BadDurations
}

// NewPlayEvent builds a normalized event from already-parsed parts.
func NewPlayEvent(end time.Time, artist, track string, msPlayed int64) PlayEvent {
	return PlayEvent{
		EndTime:  end,
		Artist:   artist,
		Track:    track,
		MsPlayed: msPlayed,
		Date:     end.Truncate(24 * time.Hour),
		Minutes:  float64(msPlayed) / 60000,
	}
}

// Normalize converts raw export records into PlayEvents. Records with
// an unparseable endTime or a negative msPlayed are skipped and
// counted. If endTime is absent from every record the input does not
// match the export schema at all and Normalize fails.
func Normalize(raw []RawPlay) ([]PlayEvent, NormalizeStats, error) {
	var stats NormalizeStats
	events := make([]PlayEvent, 0, len(raw))

	sawEndTime := false
	for _, r := range raw {
		if r.EndTime == "" {
			stats.BadTimestamps++
			continue
		}
		sawEndTime = true

		end, err := time.Parse(endTimeLayout, r.EndTime)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"endTime": r.EndTime,
				"track":   r.TrackName,
			}).Warn("skipping record: unparseable endTime")
			stats.BadTimestamps++
			continue
		}

		if r.MsPlayed < 0 {
			logrus.WithFields(logrus.Fields{
				"msPlayed": r.MsPlayed,
				"track":    r.TrackName,
			}).Warn("skipping record: negative msPlayed")
			stats.BadDurations++
			continue
		}

		events = append(events, NewPlayEvent(end, r.ArtistName, r.TrackName, r.MsPlayed))
	}

	if len(raw) > 0 && !sawEndTime {
		return nil, stats, fmt.Errorf("no record carries an endTime field: %w", ErrSchema)
	}
	return events, stats, nil
}
