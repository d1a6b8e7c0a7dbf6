package fetcher

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jhogstrom/aoc-highscores/internal/types"
)

// Fetcher retrieves the raw snapshot bytes for one board from upstream.
type Fetcher interface {
	Fetch(key types.BoardKey) ([]byte, error)
}

type AOCFetcherConfig struct {
	SessionCookie string
}

type AOCFetcher struct {
	Config AOCFetcherConfig
	Client *http.Client
}

func NewAOCFetcher(config AOCFetcherConfig) *AOCFetcher {
	return &AOCFetcher{
		Config: config,
		Client: &http.Client{},
	}
}

func (f *AOCFetcher) Fetch(key types.BoardKey) ([]byte, error) {
	req, err := http.NewRequest("GET", key.URL(), nil)
	if err != nil {
		log.Println("WARN: Failed to create AOC request")
		return nil, errors.New("failed to fetch AOC")
	}

	if len(f.Config.SessionCookie) == 0 {
		// An unauthenticated fetch is attempted anyway; upstream decides.
		log.Println("WARN: No session cookie set")
	} else {
		req.AddCookie(&http.Cookie{
			Name:  "session",
			Value: f.Config.SessionCookie,
			// values after this not required, but this is what AOC uses, and httponly increses security
			Domain:   ".adventofcode.com",
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
		})
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		log.Printf("ERROR: %s\n", err)
		return nil, errors.New("failed to fetch AOC")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("ERROR: %s\n", err)
		return nil, errors.New("failed to fetch AOC")
	}

	return raw, nil
}
