package scoring

import (
	"errors"
	"sort"
	"time"
)

// publishTime is the instant day's puzzle opened, as unix seconds.
func (lb *Leaderboard) publishTime(day int) int64 {
	return time.Date(lb.year, time.December, day, 6, 0, 0, 0, lb.loc).Unix()
}

// participantCount is the number of players points are handed out over.
func (lb *Leaderboard) participantCount() int {
	if !lb.excludeZero {
		return len(lb.Players)
	}
	n := 0
	for _, p := range lb.Players {
		if p.Stars() > 0 {
			n++
		}
	}
	return n
}

// PostProcess runs the aggregation pass: per-star elapsed times, completion
// rankings with tie collapse, running score totals, accumulated-score
// rankings, the overall standings position and the star-2 race.
//
// The accumulators are cumulative day over day, so the pass must run exactly
// once per Leaderboard; a second call is refused.
func (lb *Leaderboard) PostProcess() error {
	if lb.processed {
		return errors.New("leaderboard already post-processed")
	}
	lb.processed = true

	playerCount := lb.participantCount()

	// Running "most recent star" per player id, used as ranking tie-break.
	lastStar := make(map[int]int64, len(lb.Players))

	for day := 1; day <= lb.HighestDay; day++ {
		lb.resolveTimes(day, playerCount)
		for star := 0; star < 2; star++ {
			lb.rankCompletions(day, star, playerCount, lastStar)
		}
		for star := 0; star < 2; star++ {
			lb.rankAccumulatedScores(day, star)
		}
	}

	lb.assignOverallPositions()
	lb.rankStar2Race()

	return nil
}

// resolveTimes fills in per-star elapsed and accumulated times and the day's
// best times, and accrues pending points for unfinished stars.
func (lb *Leaderboard) resolveTimes(day, playerCount int) {
	publish := lb.publishTime(day)
	stats := lb.Days[day]

	for _, p := range lb.Players {
		for star := 0; star < 2; star++ {
			s := p.Day(day).Stars[star]
			if !s.Completed() {
				p.PendingPoints += playerCount - stats[star].StarsAwarded
				continue
			}

			s.TimeToComplete = s.CompletionTime - publish
			stats[star].LowerBestTime(s.TimeToComplete)

			// The accumulated chain carries forward from the previous
			// day's second star; a missed star 2 breaks it.
			prev, ok := int64(0), true
			if day > 1 {
				prevStar := p.Day(day - 1).Stars[1]
				prev, ok = prevStar.AccumulatedTimeToComplete, prevStar.HasAccumulatedTime
			}
			if ok {
				s.AccumulatedTimeToComplete = prev + s.TimeToComplete
				s.HasAccumulatedTime = true
			}
		}
	}
}

// rankCompletions orders the day's finishers by completion time, collapses
// exact ties onto the shared better position, awards points and snapshots
// every player's running totals into the star.
func (lb *Leaderboard) rankCompletions(day, star, playerCount int, lastStar map[int]int64) {
	stats := lb.Days[day][star]
	excluded := lb.DayExcluded(day)

	ordered := make([]*Player, 0, len(lb.Players))
	for _, p := range lb.Players {
		if p.Day(day).Stars[star].Completed() {
			ordered = append(ordered, p)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		at, bt := a.Day(day).Stars[star].CompletionTime, b.Day(day).Stars[star].CompletionTime
		if at != bt {
			return at < bt
		}
		if lastStar[a.Id] != lastStar[b.Id] {
			return lastStar[a.Id] < lastStar[b.Id]
		}
		return a.Id < b.Id
	})

	for i, p := range ordered {
		s := p.Day(day).Stars[star]

		// Exact ties share the position of the player just ahead; the
		// next distinct time resumes at its true ordinal.
		index := i
		if i > 0 {
			prev := ordered[i-1].Day(day).Stars[star]
			if s.CompletionTime == prev.CompletionTime {
				index = prev.Position - 1
			}
		}
		s.Position = index + 1

		if !excluded {
			p.TotalScore += playerCount - index
			p.TobiiScoreTotal += index
		}

		if best, ok := stats.BestTime(); ok {
			s.OffsetFromWinner = s.TimeToComplete - best
		}
		lastStar[p.Id] = s.CompletionTime
	}

	for _, p := range lb.Players {
		s := p.Day(day).Stars[star]
		if !s.Completed() && !excluded {
			p.TobiiScoreTotal += len(lb.Players)
		}
		s.AccumulatedScore = p.TotalScore
		s.AccumulatedTobiiScore = p.TobiiScoreTotal
		stats.RaiseTopScore(p.TotalScore)
		// The derived total replaces the score read from upstream; the
		// standings order sorts on it.
		p.LocalScore = p.TotalScore
	}
}

// rankAccumulatedScores assigns the 0-based rank by running score for one
// (day, star). Scoreless players keep the -1 sentinel.
func (lb *Leaderboard) rankAccumulatedScores(day, star int) {
	scored := make([]*Player, 0, len(lb.Players))
	for _, p := range lb.Players {
		if p.Day(day).Stars[star].AccumulatedScore > 0 {
			scored = append(scored, p)
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i].Day(day).Stars[star], scored[j].Day(day).Stars[star]
		if a.AccumulatedScore != b.AccumulatedScore {
			return a.AccumulatedScore > b.AccumulatedScore
		}
		return scored[i].Id < scored[j].Id
	})

	for i, p := range scored {
		s := p.Day(day).Stars[star]
		s.AccumulatedPosition = i
		if i > 0 {
			prev := scored[i-1].Day(day).Stars[star]
			if s.AccumulatedScore == prev.AccumulatedScore {
				s.AccumulatedPosition = prev.AccumulatedPosition
			}
		}
	}
}

// assignOverallPositions ranks everyone by their final-day accumulated
// score. Ties break by ascending id; every player gets a distinct ordinal.
func (lb *Leaderboard) assignOverallPositions() {
	ordered := make([]*Player, len(lb.Players))
	copy(ordered, lb.Players)
	sort.Slice(ordered, func(i, j int) bool {
		a := ordered[i].Day(lb.HighestDay).Stars[1].AccumulatedScore
		b := ordered[j].Day(lb.HighestDay).Stars[1].AccumulatedScore
		if a != b {
			return a > b
		}
		return ordered[i].Id < ordered[j].Id
	})
	for i, p := range ordered {
		p.Position = i + 1
	}
}

// rankStar2Race ranks, per day, the players who finished both stars by the
// time between star 1 and star 2. Everyone else gets the sentinel position
// one past the player count.
func (lb *Leaderboard) rankStar2Race() {
	for day := 1; day <= lb.HighestDay; day++ {
		finished := make([]*Player, 0, len(lb.Players))
		for _, p := range lb.Players {
			if p.Day(day).StarCount() == 2 {
				finished = append(finished, p)
			}
		}
		sort.Slice(finished, func(i, j int) bool {
			a, b := finished[i].Day(day), finished[j].Day(day)
			if a.TimeBetweenStars != b.TimeBetweenStars {
				return a.TimeBetweenStars < b.TimeBetweenStars
			}
			return finished[i].Id < finished[j].Id
		})

		for i, p := range finished {
			d := p.Day(day)
			d.Star2Position = i + 1
			if i > 0 {
				prev := finished[i-1].Day(day)
				if d.TimeBetweenStars == prev.TimeBetweenStars {
					d.Star2Position = prev.Star2Position
				}
			}
		}

		for _, p := range lb.Players {
			if p.Day(day).StarCount() != 2 {
				p.Day(day).Star2Position = len(lb.Players) + 1
			}
		}
	}
}
