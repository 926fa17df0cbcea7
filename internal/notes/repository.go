package notes

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	"example.com/notes-store/internal/db"
)

// DefaultContent is the text every new note starts with.
const DefaultContent = "Write a note!"

// Opener opens the database handle a Repository runs on.
type Opener func(ctx context.Context) (*db.DB, error)

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

// Repository is the notes store. It opens its database on first use and
// serializes every operation on a single mutex.
type Repository struct {
	mu   sync.Mutex
	open Opener
	log  *slog.Logger
	conn *db.DB
}

func NewRepository(open Opener, opts ...Option) *Repository {
	r := &Repository{open: open, log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Connect opens the database and creates the notes table if absent.
// It is a no-op once connected. A failed attempt leaves the store
// disconnected, so the next call starts over.
func (r *Repository) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connect(ctx)
}

func (r *Repository) connect(ctx context.Context) error {
	if r.conn != nil {
		return nil
	}

	conn, err := r.open(ctx)
	if err != nil {
		return r.fail("connect", KindOpen, err)
	}
	if _, err := conn.SQL.ExecContext(ctx, conn.Dialect.CreateTable); err != nil {
		_ = conn.SQL.Close()
		return r.fail("connect", KindSchema, err)
	}

	r.conn = conn
	r.log.Debug("notes store connected", "dialect", conn.Dialect.Name, "path", conn.Path)
	return nil
}

// Close releases the database handle. The store reconnects on next use.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return nil
	}
	err := r.conn.SQL.Close()
	r.conn = nil
	return err
}

// Create inserts a note holding DefaultContent and returns its id.
func (r *Repository) Create(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.connect(ctx); err != nil {
		return 0, err
	}

	stmt, err := r.conn.SQL.PrepareContext(ctx, r.conn.Dialect.Insert)
	if err != nil {
		return 0, r.fail("create", KindPrepare, err)
	}
	defer stmt.Close()

	if r.conn.Dialect.InsertReturnsID {
		var id int64
		if err := stmt.QueryRowContext(ctx, DefaultContent).Scan(&id); err != nil {
			return 0, r.fail("create", KindExec, err)
		}
		return id, nil
	}

	res, err := stmt.ExecContext(ctx, DefaultContent)
	if err != nil {
		return 0, r.fail("create", KindExec, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, r.fail("create", KindExec, err)
	}
	return id, nil
}

// List returns every stored note in the engine's natural order.
// A failure part way through the result set discards what was read.
func (r *Repository) List(ctx context.Context) ([]Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.connect(ctx); err != nil {
		return nil, err
	}

	stmt, err := r.conn.SQL.PrepareContext(ctx, r.conn.Dialect.SelectAll)
	if err != nil {
		return nil, r.fail("list", KindPrepare, err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, r.fail("list", KindExec, err)
	}
	defer rows.Close()

	out, err := scanNotes(rows)
	if err != nil {
		return nil, r.fail("list", KindExec, err)
	}
	return out, nil
}

// Save overwrites the content of the note with n.ID. A missing id is not an error.
func (r *Repository) Save(ctx context.Context, n Note) error {
	return r.exec(ctx, "save", func(d db.Dialect) string { return d.Update }, n.Content, n.ID)
}

// Delete removes the note with n.ID. Deleting a missing id is not an error.
// On SQLite the rowid of the newest note is handed out again by the next
// Create, so callers must drop snapshots of deleted notes.
func (r *Repository) Delete(ctx context.Context, n Note) error {
	return r.exec(ctx, "delete", func(d db.Dialect) string { return d.Delete }, n.ID)
}

func (r *Repository) exec(ctx context.Context, op string, query func(db.Dialect) string, args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.connect(ctx); err != nil {
		return err
	}

	stmt, err := r.conn.SQL.PrepareContext(ctx, query(r.conn.Dialect))
	if err != nil {
		return r.fail(op, KindPrepare, err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, args...); err != nil {
		return r.fail(op, KindExec, err)
	}
	return nil
}

func (r *Repository) fail(op string, kind Kind, err error) error {
	r.log.Error("notes store operation failed", "op", op, "kind", string(kind), "err", err)
	return &Error{Op: op, Kind: kind, Err: err}
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	out := make([]Note, 0, 32)
	for rows.Next() {
		var (
			n       Note
			content sql.NullString
		)
		if err := rows.Scan(&n.ID, &content); err != nil {
			return nil, err
		}
		n.Content = content.String
		out = append(out, n)
	}
	return out, rows.Err()
}
