package scoring

import "testing"

func TestApplyGlobalScores(t *testing.T) {
	lb := processed(t)
	lb.ApplyGlobalScores(GlobalScores{
		1: {"alice", "someone-else", "2"},
		// no entry for day 2
	})

	alice := playerById(t, lb, 1)
	bob := playerById(t, lb, 2)
	carol := playerById(t, lb, 3)

	// Rank 1 is worth 100, both stars of the day.
	for star := 0; star < 2; star++ {
		if got := alice.Day(1).Stars[star].GlobalScore; got != 100 {
			t.Errorf("alice day 1 star %d global score = %d, want 100", star+1, got)
		}
	}
	// Bob matched by id at rank 3.
	if got := bob.Day(1).Stars[0].GlobalScore; got != 98 {
		t.Errorf("bob global score = %d, want 98", got)
	}
	if got := carol.Day(1).Stars[0].GlobalScore; got != 0 {
		t.Errorf("carol global score = %d, want 0", got)
	}
	// Days without global data are untouched.
	if got := alice.Day(2).Stars[0].GlobalScore; got != 0 {
		t.Errorf("alice day 2 global score = %d, want 0", got)
	}
}

func TestApplyGlobalScoresEmptyTable(t *testing.T) {
	lb := processed(t)
	lb.ApplyGlobalScores(nil)

	for _, p := range lb.Players {
		for day := 1; day <= lb.HighestDay; day++ {
			for star := 0; star < 2; star++ {
				if got := p.Day(day).Stars[star].GlobalScore; got != 0 {
					t.Errorf("player %d day %d: global score = %d, want 0", p.Id, day, got)
				}
			}
		}
	}
}
