package web

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jhogstrom/aoc-highscores/internal/generator"
	"github.com/jhogstrom/aoc-highscores/internal/scoring"
	"github.com/jhogstrom/aoc-highscores/internal/types"
)

type Server struct {
	App    *fiber.App
	gen    *generator.Generator
	config ServerConfig
}

type ServerConfig struct {
	Port int
}

func InitServer(config ServerConfig, gen *generator.Generator) *Server {
	s := &Server{
		App:    fiber.New(),
		gen:    gen,
		config: config,
	}

	s.App.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,OPTIONS",
		AllowHeaders:     "Accept,Authorization,Content-Type",
		AllowCredentials: false, // credentials require explicit origins
		MaxAge:           300,
	}))

	s.App.Get("/healthz", s.HandleHealth)
	s.App.Get("/boards", s.HandleBoards)
	s.App.Get("/boards/:year/:id", s.HandleStandings)

	return s
}

// Listen blocks serving requests until the listener fails or is closed.
func (s *Server) Listen() error {
	return s.App.Listen(fmt.Sprintf(":%d", s.config.Port))
}

func (s *Server) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) HandleBoards(c *fiber.Ctx) error {
	boards, err := s.gen.DB.GetBoards()
	if err != nil {
		log.Println(err)
		return c.SendStatus(http.StatusInternalServerError)
	}
	return c.JSON(boards)
}

func (s *Server) HandleStandings(c *fiber.Ctx) error {
	boards, err := s.gen.DB.GetBoards()
	if err != nil {
		log.Println(err)
		return c.SendStatus(http.StatusInternalServerError)
	}

	var board *types.BoardConfig
	for _, b := range boards {
		if b.Year == c.Params("year") && b.BoardID == c.Params("id") {
			board = b
			break
		}
	}
	if board == nil {
		return c.SendStatus(http.StatusNotFound)
	}

	lb, fetchedAt, err := s.gen.Generate(board)
	if err != nil {
		log.Println(err)
		return c.SendStatus(http.StatusInternalServerError)
	}

	return c.JSON(standingsResponse{
		Title:      lb.Title,
		Year:       lb.Year,
		HighestDay: lb.HighestDay,
		FetchedAt:  fetchedAt.Unix(),
		Players:    standingsRows(lb),
	})
}

type standingsResponse struct {
	Title      string         `json:"title"`
	Year       string         `json:"year"`
	HighestDay int            `json:"highest_day"`
	FetchedAt  int64          `json:"fetched_at"`
	Players    []standingsRow `json:"players"`
}

type standingsRow struct {
	Id         int    `json:"id"`
	Name       string `json:"name"`
	Position   int    `json:"position"`
	TotalScore int    `json:"total_score"`
	TobiiScore int    `json:"tobii_score"`
	Stars      int    `json:"stars"`
	// Positions holds the per-star daily position, two entries per day in
	// day order, -1 for stars not completed.
	Positions []int `json:"positions"`
}

func standingsRows(lb *scoring.Leaderboard) []standingsRow {
	rows := make([]standingsRow, 0, len(lb.Players))
	for _, p := range lb.OrderedPlayers() {
		row := standingsRow{
			Id:         p.Id,
			Name:       p.Name,
			Position:   p.Position,
			TotalScore: p.TotalScore,
			TobiiScore: p.TobiiScoreTotal,
			Stars:      p.Stars(),
			Positions:  make([]int, 0, lb.HighestDay*2),
		}
		for day := 1; day <= lb.HighestDay; day++ {
			for star := 0; star < 2; star++ {
				pos := p.Day(day).Stars[star].Position
				if pos == 0 {
					pos = -1
				}
				row.Positions = append(row.Positions, pos)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
