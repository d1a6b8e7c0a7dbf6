package scoring

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/jhogstrom/aoc-highscores/internal/types"
)

// Star holds everything derived for one player's star on one day. All
// derived fields stay at their zero/sentinel values until PostProcess runs.
type Star struct {
	CompletionTime int64 // unix seconds; 0 means not completed

	Position                  int   // 1-based rank by completion time; 0 until ranked
	AccumulatedScore          int   // player's running total right after this star
	AccumulatedTobiiScore     int   // running "tobii" total right after this star
	AccumulatedPosition       int   // 0-based rank by accumulated score; -1 when scoreless
	GlobalScore               int   // bonus from the public top-100 list
	TimeToComplete            int64 // seconds from publish to completion
	AccumulatedTimeToComplete int64 // running completion time carried day over day
	HasAccumulatedTime        bool  // false when the day-over-day chain is broken
	OffsetFromWinner          int64 // seconds behind the day's fastest solver
}

func newStar(rec *types.AOCStarCompletion) *Star {
	s := &Star{AccumulatedPosition: -1}
	if rec != nil {
		s.CompletionTime = rec.CompletedAt
	}
	return s
}

func (s *Star) Completed() bool {
	return s.CompletionTime != 0
}

func (s *Star) StarCount() int {
	if s.Completed() {
		return 1
	}
	return 0
}

// PlayerDay is one player's pair of stars for one day.
type PlayerDay struct {
	Stars [2]*Star

	// TimeBetweenStars is star 2 completion minus star 1 completion,
	// meaningful only when both stars are completed.
	TimeBetweenStars int64
	Star2Position    int
}

func newPlayerDay(rec *types.AOCDayCompletion) *PlayerDay {
	d := &PlayerDay{
		Stars: [2]*Star{newStar(rec.Star(0)), newStar(rec.Star(1))},
	}
	if d.StarCount() == 2 {
		d.TimeBetweenStars = d.Stars[1].CompletionTime - d.Stars[0].CompletionTime
	}
	return d
}

func (d *PlayerDay) StarCount() int {
	return d.Stars[0].StarCount() + d.Stars[1].StarCount()
}

// Player is one member of the board with lifetime totals.
type Player struct {
	Id   int
	Name string

	// LocalScore mirrors TotalScore once PostProcess has run; the value read
	// from upstream is kept in UpstreamLocalScore.
	LocalScore         int
	UpstreamLocalScore int
	GlobalScore        int
	LastStar           int64
	TotalScore         int
	PendingPoints      int
	TobiiScoreTotal    int
	Position           int

	Days map[int]*PlayerDay
}

// Day returns the player's record for a day. Every day 1..HighestDay exists.
func (p *Player) Day(day int) *PlayerDay {
	return p.Days[day]
}

// Stars is the player's lifetime star count.
func (p *Player) Stars() int {
	n := 0
	for _, d := range p.Days {
		n += d.StarCount()
	}
	return n
}

// DayStarStats aggregates one (day, star) across all players. TopScore is a
// high-water mark and BestTime a low-water mark; both only move one way.
type DayStarStats struct {
	topScore     int
	bestTime     int64
	hasBestTime  bool
	StarsAwarded int
}

func (s *DayStarStats) TopScore() int {
	return s.topScore
}

func (s *DayStarStats) RaiseTopScore(v int) {
	if v > s.topScore {
		s.topScore = v
	}
}

func (s *DayStarStats) BestTime() (int64, bool) {
	return s.bestTime, s.hasBestTime
}

func (s *DayStarStats) LowerBestTime(v int64) {
	if !s.hasBestTime || v < s.bestTime {
		s.bestTime = v
		s.hasBestTime = true
	}
}

// Config carries everything a Leaderboard needs beyond the raw snapshot.
// ExcludedDays and the global score table come from the board registry, not
// from process-wide state.
type Config struct {
	Title        string
	Year         string
	HighestDay   int
	NameMap      map[string]string
	ExcludedDays []int
	ExcludeZero  bool
	Location     *time.Location
}

// Leaderboard owns the full derived graph for one (board, year). Built once,
// aggregated once by PostProcess, read-only afterwards.
type Leaderboard struct {
	Title      string
	Year       string
	BoardId    int
	HighestDay int
	Players    []*Player
	Days       map[int][2]*DayStarStats

	year        int
	excluded    map[int]bool
	excludeZero bool
	loc         *time.Location
	processed   bool
}

func NewLeaderboard(cfg Config, raw *types.AOCLeaderboard) (*Leaderboard, error) {
	year, err := strconv.Atoi(cfg.Year)
	if err != nil {
		return nil, fmt.Errorf("invalid year %q: %w", cfg.Year, err)
	}

	highestDay := cfg.HighestDay
	if highestDay == 0 {
		highestDay = HighestDay(year, time.Now())
	}

	loc := cfg.Location
	if loc == nil {
		loc = types.EventLocation()
	}

	lb := &Leaderboard{
		Title:       cfg.Title,
		Year:        cfg.Year,
		BoardId:     raw.OwnerId,
		HighestDay:  highestDay,
		Days:        map[int][2]*DayStarStats{},
		year:        year,
		excluded:    map[int]bool{},
		excludeZero: cfg.ExcludeZero,
		loc:         loc,
	}
	for _, d := range cfg.ExcludedDays {
		lb.excluded[d] = true
	}

	lb.Players = buildPlayers(raw, highestDay, cfg.NameMap)

	for day := 1; day <= highestDay; day++ {
		stats := [2]*DayStarStats{{}, {}}
		for _, p := range lb.Players {
			for star := 0; star < 2; star++ {
				stats[star].StarsAwarded += p.Day(day).Stars[star].StarCount()
			}
		}
		lb.Days[day] = stats
	}

	return lb, nil
}

func buildPlayers(raw *types.AOCLeaderboard, highestDay int, nameMap map[string]string) []*Player {
	players := make([]*Player, 0, len(raw.Members))

	for _, m := range raw.Members {
		p := &Player{
			Id:                 m.Id,
			Name:               m.Name,
			UpstreamLocalScore: m.LocalScore,
			LocalScore:         m.LocalScore,
			GlobalScore:        m.GlobalScore,
			LastStar:           m.LastStarTimestamp,
			Days:               map[int]*PlayerDay{},
		}
		if len(p.Name) == 0 {
			// Anonymous members have a null name upstream.
			p.Name = strconv.Itoa(m.Id)
		}
		if override, ok := nameMap[p.Name]; ok {
			p.Name = fmt.Sprintf("%s (%s)", override, p.Name)
		}

		for day, completion := range m.DayCompletions {
			p.Days[day] = newPlayerDay(completion)
		}
		for day := 1; day <= highestDay; day++ {
			if p.Days[day] == nil {
				p.Days[day] = newPlayerDay(&types.AOCDayCompletion{})
			}
		}

		// Cross-check the upstream star count against the completions.
		if p.Stars() != m.Stars {
			log.Printf("WARN: %s: upstream reports %d stars, completions hold %d\n", p.Name, m.Stars, p.Stars())
		}

		players = append(players, p)
	}

	// Map iteration order is random; fix it so two runs over the same
	// snapshot produce identical output.
	sort.Slice(players, func(i, j int) bool {
		return players[i].Id < players[j].Id
	})

	return players
}

// OrderedPlayers is the canonical standings order: local score, most recent
// star, then id, all descending.
func (lb *Leaderboard) OrderedPlayers() []*Player {
	ordered := make([]*Player, len(lb.Players))
	copy(ordered, lb.Players)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.LocalScore != b.LocalScore {
			return a.LocalScore > b.LocalScore
		}
		if a.LastStar != b.LastStar {
			return a.LastStar > b.LastStar
		}
		return a.Id > b.Id
	})
	return ordered
}

// DayExcluded reports whether a day counts for stats but not for points.
func (lb *Leaderboard) DayExcluded(day int) bool {
	return lb.excluded[day]
}

// HighestDay caps the day count to "today" while the event is running.
func HighestDay(year int, now time.Time) int {
	if now.Year() != year || now.Month() != time.December {
		return 25
	}
	if now.Day() < 25 {
		return now.Day()
	}
	return 25
}
