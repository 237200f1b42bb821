package presenter

import (
	"context"

	"notekeeper/internal/model"
	"notekeeper/internal/service"
)

type noteInput struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// DetailPresenter is the edit boundary for a single note.
type DetailPresenter struct {
	store service.NoteService
}

func NewDetailPresenter(store service.NoteService) *DetailPresenter {
	return &DetailPresenter{store: store}
}

// Save creates a note when id is empty and updates it otherwise. Both title and content must be
// non-empty; on a ValidationError nothing is written.
func (p *DetailPresenter) Save(ctx context.Context, id, title, content string) (*model.Note, error) {
	if err := check(noteInput{Title: title, Content: content}, MsgTitleAndContent); err != nil {
		return nil, err
	}
	if id == "" {
		return p.store.Create(ctx, title, content)
	}
	return p.store.Update(ctx, id, title, content)
}

// Open returns the note to edit.
func (p *DetailPresenter) Open(ctx context.Context, id string) (*model.Note, error) {
	return p.store.Get(ctx, id)
}
