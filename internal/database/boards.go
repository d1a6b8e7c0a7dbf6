package database

import (
	"log"
	"strconv"
	"strings"

	"github.com/jhogstrom/aoc-highscores/internal/types"
)

// GetBoards returns every registered (board, year) to regenerate.
func (d *DatabaseInst) GetBoards() ([]*types.BoardConfig, error) {
	d.dbLock.Lock()
	defer d.dbLock.Unlock()

	rows, err := d.db.Query("SELECT board_id, year, title, uuid, excluded_days FROM board ORDER BY year, board_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []*types.BoardConfig{}

	for rows.Next() {
		board := &types.BoardConfig{}
		var excluded string

		err = rows.Scan(&board.BoardID, &board.Year, &board.Title, &board.Uuid, &excluded)
		if err != nil {
			return nil, err
		}

		board.ExcludedDays = parseDayList(excluded)
		boards = append(boards, board)
	}

	return boards, nil
}

func (d *DatabaseInst) AddBoard(board *types.BoardConfig) error {
	d.dbLock.Lock()
	defer d.dbLock.Unlock()

	days := make([]string, 0, len(board.ExcludedDays))
	for _, day := range board.ExcludedDays {
		days = append(days, strconv.Itoa(day))
	}

	row := d.db.QueryRow("SELECT board_id FROM board WHERE board_id = ? AND year = ?", board.BoardID, board.Year)
	var id string
	if scanErr := row.Scan(&id); scanErr != nil {
		_, err := d.db.Exec("INSERT INTO board (board_id, year, title, uuid, excluded_days) VALUES (?, ?, ?, ?, ?);",
			board.BoardID, board.Year, board.Title, board.Uuid, strings.Join(days, ","))
		return err
	}
	_, err := d.db.Exec("UPDATE board SET title = ?, uuid = ?, excluded_days = ? WHERE board_id = ? AND year = ?;",
		board.Title, board.Uuid, strings.Join(days, ","), board.BoardID, board.Year)
	return err
}

// GetNameOverrides returns the raw name -> replacement map for one board.
func (d *DatabaseInst) GetNameOverrides(boardID string) (map[string]string, error) {
	d.dbLock.Lock()
	defer d.dbLock.Unlock()

	rows, err := d.db.Query("SELECT raw_name, display_name FROM name_override WHERE board_id = ?", boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := map[string]string{}

	for rows.Next() {
		var raw, display string
		err = rows.Scan(&raw, &display)
		if err != nil {
			return nil, err
		}
		overrides[raw] = display
	}

	return overrides, nil
}

func (d *DatabaseInst) SetNameOverride(boardID, rawName, displayName string) error {
	d.dbLock.Lock()
	defer d.dbLock.Unlock()

	row := d.db.QueryRow("SELECT raw_name FROM name_override WHERE board_id = ? AND raw_name = ?", boardID, rawName)
	var name string
	if scanErr := row.Scan(&name); scanErr != nil {
		_, err := d.db.Exec("INSERT INTO name_override (board_id, raw_name, display_name) VALUES (?, ?, ?);",
			boardID, rawName, displayName)
		return err
	}
	_, err := d.db.Exec("UPDATE name_override SET display_name = ? WHERE board_id = ? AND raw_name = ?;",
		displayName, boardID, rawName)
	return err
}

// GetGlobalScores returns the ingested public top-100 lists for one year,
// day -> names in rank order.
func (d *DatabaseInst) GetGlobalScores(year string) (map[int][]string, error) {
	d.dbLock.Lock()
	defer d.dbLock.Unlock()

	rows, err := d.db.Query("SELECT day, name FROM global_score WHERE year = ? ORDER BY day, rank", year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := map[int][]string{}

	for rows.Next() {
		var day int
		var name string
		err = rows.Scan(&day, &name)
		if err != nil {
			return nil, err
		}
		scores[day] = append(scores[day], name)
	}

	return scores, nil
}

// ReplaceGlobalDay overwrites one day's ingested top-100 list.
func (d *DatabaseInst) ReplaceGlobalDay(year string, day int, names []string) error {
	d.dbLock.Lock()
	defer d.dbLock.Unlock()

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec("DELETE FROM global_score WHERE year = ? AND day = ?;", year, day)
	if err != nil {
		tx.Rollback()
		return err
	}

	for rank, name := range names {
		_, err = tx.Exec("INSERT INTO global_score (year, day, rank, name) VALUES (?, ?, ?, ?);",
			year, day, rank+1, name)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func parseDayList(s string) []int {
	days := []int{}
	for _, part := range strings.Split(s, ",") {
		if len(part) == 0 {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil {
			log.Printf("Got invalid day list entry: %s\n", part)
			continue
		}
		days = append(days, day)
	}
	return days
}
