package repository

import (
	"context"

	"notekeeper/internal/model"
)

// NoteRepository defines data access for notes. No business logic here; strictly persistence.
type NoteRepository interface {
	// Create inserts a new note. The caller assigns ID and CreatedAt.
	Create(ctx context.Context, note *model.Note) (*model.Note, error)

	// FindByID returns a note by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Note, error)

	// List returns notes ordered by CreatedAt descending, ties broken by insertion order (latest first).
	List(ctx context.Context, q ListQuery) ([]model.Note, error)

	// Update rewrites title and content of an existing note, or returns ErrNotFound.
	Update(ctx context.Context, id, title, content string) error

	// Delete removes a note by ID, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// ListQuery narrows a List call.
type ListQuery struct {
	// Filter keeps notes whose title or content contains it, ignoring case and diacritics.
	// Empty means no filtering.
	Filter string
}
