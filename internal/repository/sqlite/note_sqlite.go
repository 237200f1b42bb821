// Package sqlite stores notes in an embedded SQLite database.
//
// Filtering relies on the fold() scalar function registered by database.RegisterFoldFunction,
// so the repository must be used with a *sql.DB opened through database.NewSQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"notekeeper/internal/model"
	"notekeeper/internal/repository"
)

// NoteSQLite is a SQLite implementation of repository.NoteRepository.
type NoteSQLite struct {
	db *sql.DB
}

// NewNoteSQLite creates a new NoteSQLite repository.
func NewNoteSQLite(db *sql.DB) *NoteSQLite {
	return &NoteSQLite{db: db}
}

var _ repository.NoteRepository = (*NoteSQLite)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*model.Note, error) {
	var (
		n       model.Note
		title   sql.NullString
		content sql.NullString
		micros  int64
	)
	if err := row.Scan(&n.ID, &title, &content, &micros); err != nil {
		return nil, err
	}
	n.Title = title.String
	n.Content = content.String
	n.CreatedAt = time.UnixMicro(micros).UTC()
	return &n, nil
}

// Create inserts a new note row and returns the stored record.
func (r *NoteSQLite) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (id, title, content, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, title, content, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		note.ID,
		note.Title,
		note.Content,
		note.CreatedAt.UnixMicro(),
	)
	return scanNote(row)
}

// FindByID fetches a single note by its ID.
func (r *NoteSQLite) FindByID(ctx context.Context, id string) (*model.Note, error) {
	const q = `SELECT id, title, content, created_at FROM notes WHERE id = ?`
	n, err := scanNote(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

// List returns notes newest first, ties broken by insertion order.
func (r *NoteSQLite) List(ctx context.Context, lq repository.ListQuery) ([]model.Note, error) {
	const (
		qAll = `
		SELECT id, title, content, created_at
		FROM notes
		ORDER BY created_at DESC, rowid DESC
	`
		qFiltered = `
		SELECT id, title, content, created_at
		FROM notes
		WHERE instr(fold(title), fold(?)) > 0
		   OR instr(fold(content), fold(?)) > 0
		ORDER BY created_at DESC, rowid DESC
	`
	)

	var (
		rows *sql.Rows
		err  error
	)
	if lq.Filter == "" {
		rows, err = r.db.QueryContext(ctx, qAll)
	} else {
		rows, err = r.db.QueryContext(ctx, qFiltered, lq.Filter, lq.Filter)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update rewrites title and content of an existing note.
func (r *NoteSQLite) Update(ctx context.Context, id, title, content string) error {
	const q = `UPDATE notes SET title = ?, content = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, title, content, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a note by ID.
func (r *NoteSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Ping verifies the database file is reachable.
func (r *NoteSQLite) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
