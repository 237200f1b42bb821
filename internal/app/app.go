// Package app wires configuration into the note store, presenters and exporter shared by the
// HTTP server and the CLI. Everything is built once per process and passed down explicitly.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"notekeeper/internal/config"
	"notekeeper/internal/database"
	"notekeeper/internal/export"
	"notekeeper/internal/presenter"
	"notekeeper/internal/repository"
	"notekeeper/internal/repository/memory"
	"notekeeper/internal/repository/postgres"
	"notekeeper/internal/repository/sqlite"
	"notekeeper/internal/service"
	"notekeeper/internal/storage"
)

// App is the assembled note-taking core.
type App struct {
	Config   *config.AppConfig
	Logger   *slog.Logger
	Notes    service.NoteService
	List     *presenter.ListPresenter
	Detail   *presenter.DetailPresenter
	Exporter *export.Exporter

	closers []func() error
}

// newObjectStore is swapped in tests.
var newObjectStore = storage.NewMinIO

// New opens the configured store and builds the components on top of it. reg may be nil, in which
// case store metrics are not collected.
func New(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	repo, closeRepo, err := OpenRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Logger: logger, closers: []func() error{closeRepo}}

	opts := []service.Option{service.WithLogger(logger)}
	if reg != nil {
		metrics, err := service.NewMetrics(reg)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("register store metrics: %w", err)
		}
		opts = append(opts, service.WithMetrics(metrics))
	}

	a.Notes = service.NewNoteService(repo, opts...)
	a.List = presenter.NewListPresenter(a.Notes, logger)
	a.Detail = presenter.NewDetailPresenter(a.Notes)

	var objects storage.Storage
	if cfg.MinIO.Enabled() {
		objects, err = newObjectStore(ctx, cfg.MinIO)
		if err != nil {
			// exports stay unavailable; the note store itself is fine
			logger.ErrorContext(ctx, "object_storage_init_failed",
				slog.String("endpoint", cfg.MinIO.Endpoint),
				slog.String("error", err.Error()),
			)
			objects = nil
		}
	}
	a.Exporter = export.New(a.Notes, objects, time.Duration(cfg.MinIO.URLExpirySec)*time.Second, logger)

	return a, nil
}

// OpenRepository returns the repository for cfg.Store.Driver and a function releasing it.
func OpenRepository(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (repository.NoteRepository, func() error, error) {
	if cfg.Store.Driver == config.DriverMemory {
		return memory.NewNoteMemory(), func() error { return nil }, nil
	}

	db, _, err := database.Open(ctx, cfg.Store, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return postgres.NewNotePostgres(db), db.Close, nil
	default:
		return sqlite.NewNoteSQLite(db), db.Close, nil
	}
}

// Close releases the store.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
