package db

import (
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const createSQLiteNotesTable = `CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL
);`

// sqlitePath follows the sqlite:///relative.db and sqlite:////abs.db convention.
func sqlitePath(rest string) string {
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return ":memory:"
	}
	return rest
}
