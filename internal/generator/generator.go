package generator

import (
	"log"
	"time"

	"github.com/jhogstrom/aoc-highscores/internal/database"
	"github.com/jhogstrom/aoc-highscores/internal/retriever"
	"github.com/jhogstrom/aoc-highscores/internal/scoring"
	"github.com/jhogstrom/aoc-highscores/internal/types"
)

// Generator turns a registered board into a fully derived leaderboard:
// snapshot via the retriever, overrides and global scores from the database,
// then one aggregation pass.
type Generator struct {
	DB        *database.DatabaseInst
	Retriever *retriever.Retriever
}

func New(db *database.DatabaseInst, r *retriever.Retriever) *Generator {
	return &Generator{DB: db, Retriever: r}
}

// Generate builds the leaderboard for one board. The returned time is when
// the underlying snapshot was fetched from upstream.
func (g *Generator) Generate(board *types.BoardConfig) (*scoring.Leaderboard, time.Time, error) {
	raw, fetchedAt, err := g.Retriever.GetData(board.Key())
	if err != nil {
		return nil, time.Time{}, err
	}

	overrides, err := g.DB.GetNameOverrides(board.BoardID)
	if err != nil {
		return nil, time.Time{}, err
	}

	globals, err := g.DB.GetGlobalScores(board.Year)
	if err != nil {
		return nil, time.Time{}, err
	}

	lb, err := scoring.NewLeaderboard(scoring.Config{
		Title:        board.Title,
		Year:         board.Year,
		NameMap:      overrides,
		ExcludedDays: board.ExcludedDays,
	}, raw)
	if err != nil {
		return nil, time.Time{}, err
	}

	if err := lb.PostProcess(); err != nil {
		return nil, time.Time{}, err
	}
	lb.ApplyGlobalScores(globals)

	return lb, fetchedAt, nil
}

// RefreshAll regenerates every registered board. One board failing is logged
// and does not stop the others.
func (g *Generator) RefreshAll() {
	boards, err := g.DB.GetBoards()
	if err != nil {
		log.Printf("ERROR: %s\n", err)
		return
	}

	for _, board := range boards {
		if _, _, err := g.Generate(board); err != nil {
			log.Printf("ERROR: regenerating %s: %s\n", board.Key(), err)
		}
	}
}
