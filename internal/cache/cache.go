package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jhogstrom/aoc-highscores/internal/types"
)

// Storage persists raw snapshot bytes under a string key. Satisfied by the
// gofiber/storage adapters (sqlite3 in production, memory in tests).
// Get returns nil, nil when the key is absent.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// SnapshotCache stores raw upstream snapshots together with their fetch time
// and decides whether a cached copy is still usable. Freshness windows tighten
// while the event is live and relax to two weeks otherwise.
//
// Concurrent Store/Read for the same key is last-writer-wins; a stale
// overwrite self-heals within the next freshness window.
type SnapshotCache struct {
	storage Storage
	loc     *time.Location
	now     func() time.Time
}

type envelope struct {
	FetchedAt int64  `json:"fetched_at"`
	Data      []byte `json:"data"`
}

// New creates a cache evaluating freshness in loc. AoC publishes on US
// eastern time, so that is the zone callers want.
func New(storage Storage, loc *time.Location) *SnapshotCache {
	return &SnapshotCache{
		storage: storage,
		loc:     loc,
		now:     time.Now,
	}
}

// Store overwrites the cached snapshot for key. Entries are whole records,
// never partially updated.
func (c *SnapshotCache) Store(key types.BoardKey, raw []byte, fetchedAt time.Time) error {
	data, err := json.Marshal(envelope{
		FetchedAt: fetchedAt.Unix(),
		Data:      raw,
	})
	if err != nil {
		return err
	}
	// No storage-level expiry; freshness is decided by IsFresh.
	return c.storage.Set(key.CacheKey(), data, 0)
}

// Read returns the cached raw bytes and their fetch time.
func (c *SnapshotCache) Read(key types.BoardKey) ([]byte, time.Time, error) {
	data, err := c.storage.Get(key.CacheKey())
	if err != nil {
		return nil, time.Time{}, err
	}
	if data == nil {
		return nil, time.Time{}, fmt.Errorf("no cached snapshot for %s", key)
	}

	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, time.Time{}, err
	}
	return e.Data, time.Unix(e.FetchedAt, 0), nil
}

// IsFresh reports whether the cached copy for key is recent enough to skip a
// refetch. A missing or unreadable entry is simply not fresh; storage I/O
// errors are returned to the caller.
func (c *SnapshotCache) IsFresh(key types.BoardKey) (bool, error) {
	data, err := c.storage.Get(key.CacheKey())
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		// Entry exists but carries no usable metadata. Refetch.
		return false, nil
	}

	year, err := strconv.Atoi(key.Year)
	if err != nil {
		return false, fmt.Errorf("invalid year in key %s: %w", key, err)
	}

	now := c.now().In(c.loc)
	age := now.Sub(time.Unix(e.FetchedAt, 0))
	return age < freshnessWindow(now, year), nil
}

// freshnessWindow returns the maximum tolerated snapshot age.
//
// The windows are:
//   - 2 weeks if the requested year is not the current year
//   - 2 weeks if the current month is not December
//   - 8 hours if the current day is after the 25th
//   - 1 hour from 03:00 onwards
//   - 2 minutes in the hours right after a puzzle opens
func freshnessWindow(now time.Time, year int) time.Duration {
	switch {
	case now.Year() != year:
		return 14 * 24 * time.Hour
	case now.Month() != time.December:
		return 14 * 24 * time.Hour
	case now.Day() > 25:
		return 8 * time.Hour
	case now.Hour() >= 3:
		return time.Hour
	default:
		return 2 * time.Minute
	}
}
