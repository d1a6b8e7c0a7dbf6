package cache

import (
	sqlite3 "github.com/gofiber/storage/sqlite3/v2"
)

// NewSqliteStorage opens the production byte store backing the snapshot
// cache. One table in the given sqlite file, shared by all boards.
func NewSqliteStorage(filePath string) Storage {
	return sqlite3.New(sqlite3.Config{
		Database: filePath,
		Table:    "snapshot_cache",
	})
}
