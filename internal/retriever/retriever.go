package retriever

import (
	"encoding/json"
	"time"

	"github.com/jhogstrom/aoc-highscores/internal/cache"
	"github.com/jhogstrom/aoc-highscores/internal/fetcher"
	"github.com/jhogstrom/aoc-highscores/internal/types"
)

// Retriever answers "give me the current snapshot for this board", going
// upstream only when the cached copy is no longer fresh. At most one fetch
// per call, no retries; upstream failures propagate to the caller.
type Retriever struct {
	Cache   *cache.SnapshotCache
	Fetcher fetcher.Fetcher
}

func New(c *cache.SnapshotCache, f fetcher.Fetcher) *Retriever {
	return &Retriever{Cache: c, Fetcher: f}
}

// GetData returns the parsed snapshot for key and the time its bytes were
// fetched from upstream.
func (r *Retriever) GetData(key types.BoardKey) (*types.AOCLeaderboard, time.Time, error) {
	if err := r.ensureCached(key); err != nil {
		return nil, time.Time{}, err
	}

	raw, fetchedAt, err := r.Cache.Read(key)
	if err != nil {
		return nil, time.Time{}, err
	}

	data := &types.AOCLeaderboard{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, time.Time{}, err
	}

	return data, fetchedAt, nil
}

func (r *Retriever) ensureCached(key types.BoardKey) error {
	fresh, err := r.Cache.IsFresh(key)
	if err != nil {
		return err
	}
	if fresh {
		return nil
	}

	raw, err := r.Fetcher.Fetch(key)
	if err != nil {
		return err
	}
	return r.Cache.Store(key, raw, time.Now())
}
