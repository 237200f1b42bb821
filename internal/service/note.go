package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"notekeeper/internal/model"
	"notekeeper/internal/repository"
)

const tracerName = "notekeeper/service"

// NoteService is the note store: every operation persists before it returns.
type NoteService interface {
	// Create stores a new note with a fresh ID and the current time. No validation is applied.
	Create(ctx context.Context, title, content string) (*model.Note, error)

	// List returns notes newest first. A non-empty filter keeps notes whose title or content
	// contains it, ignoring case and diacritics.
	List(ctx context.Context, filter string) ([]model.Note, error)

	// Get returns a single note by its ID.
	Get(ctx context.Context, id string) (*model.Note, error)

	// Update replaces title and content of an existing note and returns the result.
	Update(ctx context.Context, id, title, content string) (*model.Note, error)

	// Delete removes a note by ID.
	Delete(ctx context.Context, id string) error

	// Duplicate creates a copy of an existing note titled "Copy of <title>".
	Duplicate(ctx context.Context, id string) (*model.Note, error)

	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}

// Option configures a noteService.
type Option func(*noteService)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *noteService) { s.now = now }
}

// WithIDGenerator overrides how note IDs are generated.
func WithIDGenerator(gen func() string) Option {
	return func(s *noteService) { s.newID = gen }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *noteService) { s.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(s *noteService) { s.metrics = m }
}

type noteService struct {
	repo    repository.NoteRepository
	mu      sync.Mutex
	now     func() time.Time
	newID   func() string
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// NewNoteService constructs a NoteService on top of repo.
func NewNoteService(repo repository.NoteRepository, opts ...Option) NoteService {
	s := &noteService{
		repo:   repo,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *noteService) Create(ctx context.Context, title, content string) (n *model.Note, err error) {
	ctx, done := s.begin(ctx, "create")
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(ctx, title, content)
}

// create expects s.mu to be held.
func (s *noteService) create(ctx context.Context, title, content string) (*model.Note, error) {
	note := &model.Note{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	stored, err := s.repo.Create(ctx, note)
	if err != nil {
		return nil, storageErr("create", err)
	}
	return stored, nil
}

func (s *noteService) List(ctx context.Context, filter string) (items []model.Note, err error) {
	ctx, done := s.begin(ctx, "list", attribute.Bool("note.filtered", filter != ""))
	defer func() { done(err) }()

	items, err = s.repo.List(ctx, repository.ListQuery{Filter: filter})
	if err != nil {
		return nil, storageErr("list", err)
	}
	return items, nil
}

func (s *noteService) Get(ctx context.Context, id string) (n *model.Note, err error) {
	ctx, done := s.begin(ctx, "get", attribute.String("note.id", id))
	defer func() { done(err) }()

	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.find(ctx, "get", id)
}

func (s *noteService) Update(ctx context.Context, id, title, content string) (n *model.Note, err error) {
	ctx, done := s.begin(ctx, "update", attribute.String("note.id", id))
	defer func() { done(err) }()

	if err := checkID(id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.find(ctx, "update", id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, title, content); err != nil {
		return nil, storageErr("update", err)
	}
	current.Title = title
	current.Content = content
	return current, nil
}

func (s *noteService) Delete(ctx context.Context, id string) (err error) {
	ctx, done := s.begin(ctx, "delete", attribute.String("note.id", id))
	defer func() { done(err) }()

	if err := checkID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return storageErr("delete", err)
	}
	return nil
}

func (s *noteService) Duplicate(ctx context.Context, id string) (n *model.Note, err error) {
	ctx, done := s.begin(ctx, "duplicate", attribute.String("note.id", id))
	defer func() { done(err) }()

	if err := checkID(id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.find(ctx, "duplicate", id)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, CopyTitle(src.Title), src.Content)
}

func (s *noteService) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

// CopyTitle returns the title given to a duplicated note.
func CopyTitle(title string) string {
	if title == "" {
		return "Copy of Note"
	}
	return "Copy of " + title
}

func (s *noteService) find(ctx context.Context, op, id string) (*model.Note, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return n, nil
}

// begin opens the span for op and returns a function that closes it, counts the outcome and logs it.
func (s *noteService) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "NoteService."+op, trace.WithAttributes(attrs...))
	start := time.Now()

	return ctx, func(err error) {
		defer span.End()

		result := resultOf(err)
		s.metrics.observe(op, result)

		if err != nil && result == "error" {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.ErrorContext(ctx, "note_store_failed",
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
			return
		}
		s.logger.DebugContext(ctx, "note_store_op",
			slog.String("op", op),
			slog.String("result", result),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrIDRequired):
		return "invalid"
	default:
		return "error"
	}
}

// checkID rejects empty IDs. Anything that is not a UUID cannot name a stored note.
func checkID(id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return nil
}

func storageErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return &StorageError{Op: op, Err: err}
}
