package scoring

import (
	"log"
	"strconv"
)

// GlobalScores maps day number to the public top-100 list for that day, in
// rank order. Entries are display names or numeric ids as published.
type GlobalScores map[int][]string

// ApplyGlobalScores awards 101-rank bonus points to local players that made
// the public top 100, written to both stars of the day. Reads only player
// names and ids, so it can run any time after construction; players and days
// absent from the table are left alone.
func (lb *Leaderboard) ApplyGlobalScores(table GlobalScores) {
	if len(table) == 0 {
		return
	}

	for _, p := range lb.Players {
		id := strconv.Itoa(p.Id)
		for day := 1; day <= lb.HighestDay; day++ {
			rank := globalRank(table[day], p.Name, id)
			if rank == 0 {
				continue
			}
			points := 101 - rank
			log.Printf("%s scored %d global points on day %d, year %s\n", p.Name, points, day, lb.Year)
			for star := 0; star < 2; star++ {
				p.Day(day).Stars[star].GlobalScore = points
			}
		}
	}
}

// globalRank returns the 1-based rank of the player in one day's list, 0 if
// absent.
func globalRank(list []string, name, id string) int {
	for i, entry := range list {
		if entry == name || entry == id {
			return i + 1
		}
	}
	return 0
}
