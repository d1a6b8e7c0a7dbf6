package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jhogstrom/aoc-highscores/internal/cache"
	"github.com/jhogstrom/aoc-highscores/internal/database"
	"github.com/jhogstrom/aoc-highscores/internal/fetcher"
	"github.com/jhogstrom/aoc-highscores/internal/generator"
	"github.com/jhogstrom/aoc-highscores/internal/retriever"
	"github.com/jhogstrom/aoc-highscores/internal/types"
	"github.com/jhogstrom/aoc-highscores/internal/web"

	"github.com/go-co-op/gocron/v2"
	dotenv "github.com/joho/godotenv"
)

func main() {
	err := dotenv.Load()
	if err != nil {
		log.Println("WARN: Failed to load .env")
	}

	db, err := database.InitDatabase("./data.sqlite3", "./migrations")
	if err != nil {
		log.Println(err)
		return
	}

	snapshots := cache.New(cache.NewSqliteStorage("./snapshots.sqlite3"), types.EventLocation())
	aoc := fetcher.NewAOCFetcher(fetcher.AOCFetcherConfig{
		SessionCookie: os.Getenv("SESSION_ID"),
	})
	gen := generator.New(db, retriever.New(snapshots, aoc))

	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalln("Failed to start scheduler")
	}

	// The snapshot cache decides per board whether a run actually goes upstream.
	j, err := s.NewJob(
		gocron.DurationJob(time.Minute/2),
		gocron.NewTask(gen.RefreshAll),
	)
	if err != nil {
		log.Println(err)
		return
	}

	s.Start()
	defer s.Shutdown()
	j.RunNow() // durationjob doesn't run on startup

	port := os.Getenv("SERVER_PORT")
	if len(port) == 0 {
		port = "7071"
	}
	iport, err := strconv.Atoi(port)
	if err != nil {
		log.Println("Failed to parse SERVER_PORT env variable")
	}

	srv := web.InitServer(web.ServerConfig{
		Port: iport,
	}, gen)

	log.Println("Started!")

	if err := srv.Listen(); err != nil {
		log.Fatalln(err)
	}
}
