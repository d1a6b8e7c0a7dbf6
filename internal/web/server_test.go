package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jhogstrom/aoc-highscores/internal/database"
	"github.com/jhogstrom/aoc-highscores/internal/generator"
	"github.com/jhogstrom/aoc-highscores/internal/types"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.InitDatabase(filepath.Join(t.TempDir(), "web.sqlite3"), "../../migrations")
	if err != nil {
		t.Fatalf("InitDatabase: %s", err)
	}
	return InitServer(ServerConfig{Port: 0}, generator.New(db, nil))
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)

	resp, err := s.App.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestHandleBoards(t *testing.T) {
	s := testServer(t)
	if err := s.gen.DB.AddBoard(&types.BoardConfig{BoardID: "12345", Year: "2023", Title: "test board"}); err != nil {
		t.Fatal(err)
	}

	resp, err := s.App.Test(httptest.NewRequest("GET", "/boards", nil))
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	boards := []*types.BoardConfig{}
	if err := json.NewDecoder(resp.Body).Decode(&boards); err != nil {
		t.Fatalf("decoding response: %s", err)
	}
	if len(boards) != 1 || boards[0].BoardID != "12345" {
		t.Errorf("boards = %+v", boards)
	}
}

func TestHandleStandingsUnknownBoard(t *testing.T) {
	s := testServer(t)

	resp, err := s.App.Test(httptest.NewRequest("GET", "/boards/2023/99999", nil))
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
