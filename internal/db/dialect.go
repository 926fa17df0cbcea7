package db

import (
	"fmt"

	"example.com/notes-store/internal/stringsx"
)

// Dialect holds the fixed statements the notes store runs against one engine.
type Dialect struct {
	Name       string
	DriverName string

	CreateTable string
	Insert      string
	SelectAll   string
	Update      string
	Delete      string

	// InsertReturnsID reports whether Insert yields the new id as a result row
	// instead of through sql.Result.LastInsertId.
	InsertReturnsID bool
}

// SQLite keys notes by the implicit rowid column.
var SQLite = Dialect{
	Name:        "sqlite",
	DriverName:  "sqlite",
	CreateTable: `CREATE TABLE IF NOT EXISTS notes (content TEXT)`,
	Insert:      `INSERT INTO notes (content) VALUES (?)`,
	SelectAll:   `SELECT rowid, content FROM notes`,
	Update:      `UPDATE notes SET content = ? WHERE rowid = ?`,
	Delete:      `DELETE FROM notes WHERE rowid = ?`,
}

// Postgres has no rowid, so the table carries an explicit identity column.
var Postgres = Dialect{
	Name:       "postgres",
	DriverName: "pgx",
	CreateTable: `
		CREATE TABLE IF NOT EXISTS notes (
			id      BIGSERIAL PRIMARY KEY,
			content TEXT
		)`,
	Insert:          `INSERT INTO notes (content) VALUES ($1) RETURNING id`,
	SelectAll:       `SELECT id, content FROM notes`,
	Update:          `UPDATE notes SET content = $1 WHERE id = $2`,
	Delete:          `DELETE FROM notes WHERE id = $1`,
	InsertReturnsID: true,
}

// DialectFor maps a configured driver name to its dialect.
// An empty name selects SQLite.
func DialectFor(name string) (Dialect, error) {
	switch stringsx.Normalize(name) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
	}
}
