// Package memory keeps notes in process memory. It backs the "memory" store driver and the
// service and presenter tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"notekeeper/internal/model"
	"notekeeper/internal/repository"
	"notekeeper/internal/search"
)

type entry struct {
	note model.Note
	seq  uint64
}

// NoteMemory is an in-memory implementation of repository.NoteRepository.
type NoteMemory struct {
	mu    sync.RWMutex
	notes map[string]entry
	seq   uint64
}

// NewNoteMemory creates an empty NoteMemory.
func NewNoteMemory() *NoteMemory {
	return &NoteMemory{notes: make(map[string]entry)}
}

var _ repository.NoteRepository = (*NoteMemory)(nil)

func (r *NoteMemory) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.notes[note.ID] = entry{note: *note, seq: r.seq}
	out := *note
	return &out, nil
}

func (r *NoteMemory) FindByID(ctx context.Context, id string) (*model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.notes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := e.note
	return &out, nil
}

func (r *NoteMemory) List(ctx context.Context, lq repository.ListQuery) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	matched := make([]entry, 0, len(r.notes))
	for _, e := range r.notes {
		if search.MatchNote(e.note, lq.Filter) {
			matched = append(matched, e)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b entry) int {
		if c := b.note.CreatedAt.Compare(a.note.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.seq > b.seq:
			return -1
		case a.seq < b.seq:
			return 1
		}
		return 0
	})

	items := make([]model.Note, 0, len(matched))
	for _, e := range matched {
		items = append(items, e.note)
	}
	return items, nil
}

func (r *NoteMemory) Update(ctx context.Context, id, title, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.notes[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.note.Title = title
	e.note.Content = content
	r.notes[id] = e
	return nil
}

func (r *NoteMemory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

// Ping always succeeds.
func (r *NoteMemory) Ping(context.Context) error { return nil }
