package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// FileName is the name of the SQLite file kept in the documents directory.
const FileName = "notes.sqlite"

// Options describes how to reach the notes database.
type Options struct {
	Driver string

	// Path is the SQLite file. Empty means DefaultPath().
	Path string
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type DB struct {
	SQL     *sql.DB
	Dialect Dialect
	// Path is the SQLite file the handle was opened on; empty for Postgres.
	Path string
}

// DefaultPath returns <home>/Documents/notes.sqlite.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, "Documents", FileName), nil
}

// Open opens (creating if needed) the database described by opts and
// verifies it is reachable.
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	var dsn, path string
	switch dialect.Name {
	case SQLite.Name:
		path = opts.Path
		if path == "" {
			if path, err = DefaultPath(); err != nil {
				return nil, err
			}
		}
		// The driver reads everything after '?' as DSN parameters.
		if strings.ContainsRune(path, '?') {
			return nil, fmt.Errorf("database path %q must not contain '?'", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)"
	default:
		if opts.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		dsn = opts.DatabaseURL
	}

	sqlDB, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &DB{SQL: sqlDB, Dialect: dialect, Path: path}, nil
}
