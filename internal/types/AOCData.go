package types

// AOCLeaderboard mirrors the JSON served at
// https://adventofcode.com/<year>/leaderboard/private/view/<id>.json
type AOCLeaderboard struct {
	OwnerId int                   `json:"owner_id"`
	Year    string                `json:"event"`
	Members map[string]*AOCMember `json:"members,omitempty"`
}

type AOCMember struct {
	Id                int                       `json:"id"`
	Name              string                    `json:"name"` // null upstream for anonymous users
	LocalScore        int                       `json:"local_score"`
	GlobalScore       int                       `json:"global_score"`
	Stars             int                       `json:"stars"`
	LastStarTimestamp int64                     `json:"last_star_ts"`
	DayCompletions    map[int]*AOCDayCompletion `json:"completion_day_level,omitempty"`
}

type AOCDayCompletion struct {
	Star1 *AOCStarCompletion `json:"1,omitempty"`
	Star2 *AOCStarCompletion `json:"2,omitempty"`
}

// Star returns the completion record for star index 0 or 1, nil if absent.
func (d *AOCDayCompletion) Star(index int) *AOCStarCompletion {
	if d == nil {
		return nil
	}
	if index == 0 {
		return d.Star1
	}
	return d.Star2
}

type AOCStarCompletion struct {
	Index       int   `json:"star_index"`
	CompletedAt int64 `json:"get_star_ts"`
}
