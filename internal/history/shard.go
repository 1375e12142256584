package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
)

// maxShards bounds the discovery loop so a bad path pattern can't
// spin forever. Real exports split at 10k records per shard, so even
// very heavy listeners stay in the single digits.
const maxShards = 1000

// ShardResult is the outcome of loading one sharded collection.
// Truncated is non-nil when a shard after the first failed to load
// for a reason other than absence; Records then holds everything up
// to the failing shard.
type ShardResult struct {
	Records   []RawPlay
	Shards    int
	Truncated error
}

// LoadSharded loads the numbered shard files matching pattern, which
// must contain one %d verb. Shards are read in index order starting
// at 0 and loading stops at the first missing index, so a gap hides
// every shard after it. A missing shard 0 yields an empty result.
//
// A parse failure mid-sequence is a diagnostic, not an error: loading
// stops, the prior shards' records are kept, and the failure is
// reported via ShardResult.Truncated.
func LoadSharded(pattern string) ShardResult {
	var result ShardResult
	for i := 0; i < maxShards; i++ {
		path := fmt.Sprintf(pattern, i)
		records, err := LoadFile(path)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"shard": i,
				"path":  path,
			}).WithError(err).Warn("shard load failed, keeping earlier shards")
			result.Truncated = err
			break
		}
		result.Records = append(result.Records, records...)
		result.Shards++
		logrus.WithFields(logrus.Fields{
			"path":    path,
			"entries": len(records),
		}).Debug("loaded shard")
	}
	return result
}

// LoadFile loads a single file of export records. Unlike LoadSharded
// there is no tolerance here: absence is ErrNotFound and bad content
// is ErrParse, both fatal to the caller.
func LoadFile(path string) ([]RawPlay, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []RawPlay
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrParse)
	}
	return records, nil
}

// LoadOpaque loads a collaborator file (YourLibrary.json,
// Wrapped2024.json) that the analysis does not consume, verifying
// only presence and well-formedness.
func LoadOpaque(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: %w", path, ErrParse)
	}
	return json.RawMessage(data), nil
}
