package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "sqlite"},
		{"SQLite", "sqlite"},
		{"sqlite3", "sqlite"},
		{" postgres ", "postgres"},
		{"pgx", "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := DialectFor(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, d.Name)
		})
	}

	_, err := DialectFor("oracle")
	require.Error(t, err)
}

func TestDialects_Statements(t *testing.T) {
	tests := []struct {
		name string
		got  Dialect
		want Dialect
	}{
		{
			name: "sqlite",
			got:  SQLite,
			want: Dialect{
				Name:        "sqlite",
				DriverName:  "sqlite",
				CreateTable: "CREATE TABLE IF NOT EXISTS notes (content TEXT)",
				Insert:      "INSERT INTO notes (content) VALUES (?)",
				SelectAll:   "SELECT rowid, content FROM notes",
				Update:      "UPDATE notes SET content = ? WHERE rowid = ?",
				Delete:      "DELETE FROM notes WHERE rowid = ?",
			},
		},
		{
			name: "postgres",
			got:  Postgres,
			want: Dialect{
				Name:            "postgres",
				DriverName:      "pgx",
				CreateTable:     Postgres.CreateTable,
				Insert:          "INSERT INTO notes (content) VALUES ($1) RETURNING id",
				SelectAll:       "SELECT id, content FROM notes",
				Update:          "UPDATE notes SET content = $1 WHERE id = $2",
				Delete:          "DELETE FROM notes WHERE id = $1",
				InsertReturnsID: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.got)
		})
	}

	require.Contains(t, Postgres.CreateTable, "BIGSERIAL")
	require.NotContains(t, Postgres.Insert+Postgres.Update+Postgres.Delete, "?")
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := DefaultPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "Documents", "notes.sqlite"), p)
}

func TestOpen_SQLite_CreatesFileAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", FileName)

	d, err := Open(context.Background(), Options{Path: path, MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.SQL.Close() })

	require.Equal(t, SQLite.Name, d.Dialect.Name)
	require.Equal(t, path, d.Path)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestOpen_SQLite_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	d, err := Open(context.Background(), Options{Driver: "sqlite"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.SQL.Close() })

	require.Equal(t, filepath.Join(home, "Documents", FileName), d.Path)
}

func TestOpen_SQLite_UnwritableDirectory(t *testing.T) {
	// A regular file where a directory is expected makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := Open(context.Background(), Options{Path: filepath.Join(blocker, "sub", FileName)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating database directory")
}

func TestOpen_SQLite_RejectsQueryInPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes?mode=ro.sqlite")

	_, err := Open(context.Background(), Options{Path: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not contain '?'")

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle"})
	require.Error(t, err)
}

func TestOpen_Postgres_RequiresURL(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "postgres"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
}

func TestOpen_Postgres(t *testing.T) {
	url := os.Getenv("NOTES_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("NOTES_TEST_DATABASE_URL not set")
	}

	d, err := Open(context.Background(), Options{Driver: "postgres", DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.SQL.Close() })

	require.Equal(t, Postgres.Name, d.Dialect.Name)
	require.Empty(t, d.Path)
}
