package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"notekeeper/internal/model"
	"notekeeper/internal/repository"
)

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*model.Note, error) {
	var (
		n       model.Note
		title   sql.NullString
		content sql.NullString
	)
	if err := row.Scan(&n.ID, &title, &content, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Title = title.String
	n.Content = content.String
	n.CreatedAt = n.CreatedAt.UTC()
	return &n, nil
}

// Create inserts a new note row and returns the stored record.
func (r *NotePostgres) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (id, title, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		note.ID,
		note.Title,
		note.Content,
		note.CreatedAt,
	)
	return scanNote(row)
}

// FindByID fetches a single note by its ID.
func (r *NotePostgres) FindByID(ctx context.Context, id string) (*model.Note, error) {
	const q = `
		SELECT id, title, content, created_at
		FROM notes
		WHERE id = $1
	`
	n, err := scanNote(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

// List returns notes newest first. The filter is matched with unaccent + lower on both sides,
// which is how Postgres expresses a case- and diacritic-insensitive substring test.
func (r *NotePostgres) List(ctx context.Context, lq repository.ListQuery) ([]model.Note, error) {
	const (
		qAll = `
		SELECT id, title, content, created_at
		FROM notes
		ORDER BY created_at DESC, seq DESC
	`
		qFiltered = `
		SELECT id, title, content, created_at
		FROM notes
		WHERE lower(unaccent(title)) LIKE lower(unaccent($1)) ESCAPE '\'
		   OR lower(unaccent(content)) LIKE lower(unaccent($1)) ESCAPE '\'
		ORDER BY created_at DESC, seq DESC
	`
	)

	var (
		rows *sql.Rows
		err  error
	)
	if lq.Filter == "" {
		rows, err = r.db.QueryContext(ctx, qAll)
	} else {
		rows, err = r.db.QueryContext(ctx, qFiltered, "%"+EscapeLike(lq.Filter)+"%")
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

// Update rewrites title and content. id and created_at are never touched.
func (r *NotePostgres) Update(ctx context.Context, id, title, content string) error {
	const q = `UPDATE notes SET title = $2, content = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, title, content)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a note by ID.
func (r *NotePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Ping verifies database connectivity.
func (r *NotePostgres) Ping(ctx context.Context) error {
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

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so the filter is matched literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
