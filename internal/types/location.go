package types

import "time"

// EventLocation is the competition's reference time zone. Puzzles open at
// midnight US eastern; all calendar decisions (publish instants, cache
// freshness windows) are evaluated in this zone.
func EventLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}
