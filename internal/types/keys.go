package types

import "fmt"

// BoardKey identifies one snapshot of one private leaderboard:
// which board, which event year. Comparable, so it works as a map key.
type BoardKey struct {
	BoardID string
	Year    string
}

// CacheKey is the storage key for the raw snapshot bytes.
func (k BoardKey) CacheKey() string {
	return fmt.Sprintf("%s_%s.json", k.BoardID, k.Year)
}

// URL is the upstream address of the private leaderboard JSON.
func (k BoardKey) URL() string {
	return fmt.Sprintf("https://adventofcode.com/%s/leaderboard/private/view/%s.json", k.Year, k.BoardID)
}

func (k BoardKey) String() string {
	return fmt.Sprintf("%s|%s", k.Year, k.BoardID)
}
