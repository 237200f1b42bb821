// Package export writes a JSON snapshot of every note to object storage and hands back a
// presigned download link.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"notekeeper/internal/model"
	"notekeeper/internal/service"
	"notekeeper/internal/storage"
)

const (
	DefaultURLExpiry = 15 * time.Minute
	keyPrefix        = "exports/"
	keyTimeLayout    = "20060102T150405Z"
	contentType      = "application/json"
)

// ErrDisabled is returned when no object storage has been configured.
var ErrDisabled = errors.New("export disabled: object storage is not configured")

// Result describes a finished export.
type Result struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// Snapshot is the document written to storage.
type Snapshot struct {
	ExportedAt time.Time    `json:"exported_at"`
	Count      int          `json:"count"`
	Notes      []model.Note `json:"notes"`
}

type Exporter struct {
	notes  service.NoteService
	store  storage.Storage
	expiry time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// New builds an Exporter. store may be nil, in which case Export returns ErrDisabled.
// A non-positive expiry falls back to DefaultURLExpiry.
func New(notes service.NoteService, store storage.Storage, expiry time.Duration, logger *slog.Logger) *Exporter {
	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{notes: notes, store: store, expiry: expiry, now: time.Now, logger: logger}
}

func (e *Exporter) Enabled() bool { return e.store != nil }

// Key returns the object key for an export taken at t.
func Key(t time.Time) string {
	return keyPrefix + "notes-" + t.UTC().Format(keyTimeLayout) + ".json"
}

func (e *Exporter) Export(ctx context.Context) (*Result, error) {
	if !e.Enabled() {
		return nil, ErrDisabled
	}

	items, err := e.notes.List(ctx, "")
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(Snapshot{ExportedAt: now, Count: len(items), Notes: items}); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := Key(now)
	size := int64(buf.Len())
	if _, err := e.store.Put(ctx, key, &buf, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"note-count": fmt.Sprint(len(items))},
	}); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := e.store.PresignGet(ctx, key, e.expiry)
	if err != nil {
		if delErr := e.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("presign export: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}

	e.logger.InfoContext(ctx, "notes_exported",
		slog.String("key", key),
		slog.Int("count", len(items)),
		slog.Int64("size", size),
	)
	return &Result{Key: key, URL: url, Count: len(items)}, nil
}
