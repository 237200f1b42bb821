package presenter

import (
	"context"
	"log/slog"
	"sync"

	"notekeeper/internal/model"
	"notekeeper/internal/service"
)

type quickNoteInput struct {
	Title   string `validate:"required"`
	Content string
}

// ListPresenter drives the note list. Build one per process at startup: the seeded flag it owns
// makes the welcome note appear at most once per run.
type ListPresenter struct {
	store  service.NoteService
	logger *slog.Logger

	mu     sync.Mutex
	seeded bool
}

func NewListPresenter(store service.NoteService, logger *slog.Logger) *ListPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListPresenter{store: store, logger: logger}
}

// Load lists notes matching filter. On the first call of the process, if the store holds no notes,
// a welcome note is created and the full collection is returned instead.
func (p *ListPresenter) Load(ctx context.Context, filter string) ([]model.Note, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	items, err := p.store.List(ctx, filter)
	if err != nil || p.seeded {
		p.seeded = true
		return items, err
	}
	p.seeded = true

	if len(items) > 0 {
		return items, nil
	}
	if filter != "" {
		// only an empty store gets seeded, not an empty search
		all, err := p.store.List(ctx, "")
		if err != nil {
			return nil, err
		}
		if len(all) > 0 {
			return items, nil
		}
	}

	if _, err := p.store.Create(ctx, WelcomeTitle, WelcomeContent); err != nil {
		return nil, err
	}
	p.logger.InfoContext(ctx, "store_seeded", slog.String("title", WelcomeTitle))
	return p.store.List(ctx, "")
}

// Seeded reports whether the one-time seeding check has run.
func (p *ListPresenter) Seeded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seeded
}

func (p *ListPresenter) Delete(ctx context.Context, id string) error {
	return p.store.Delete(ctx, id)
}

func (p *ListPresenter) Duplicate(ctx context.Context, id string) (*model.Note, error) {
	return p.store.Duplicate(ctx, id)
}

// QuickNote creates a note from a title alone; content may be empty.
func (p *ListPresenter) QuickNote(ctx context.Context, title, content string) (*model.Note, error) {
	if err := check(quickNoteInput{Title: title, Content: content}, MsgTitle); err != nil {
		return nil, err
	}
	return p.store.Create(ctx, title, content)
}
