package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/database"
	"notekeeper/internal/database/migration"
	"notekeeper/internal/logging"
	"notekeeper/internal/model"
	"notekeeper/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.EnsureMigrated(context.Background(), db, migration.SQLite, logging.Discard()))
	return db
}

func mustCreate(t *testing.T, repo *NoteSQLite, id, title, content string, at time.Time) *model.Note {
	t.Helper()
	n, err := repo.Create(context.Background(), &model.Note{ID: id, Title: title, Content: content, CreatedAt: at})
	require.NoError(t, err)
	return n
}

func TestNoteSQLite_CreateAndFind(t *testing.T) {
	repo := NewNoteSQLite(openTestDB(t))
	ctx := context.Background()
	at := time.Date(2024, 12, 7, 10, 0, 0, 123456000, time.UTC)

	created := mustCreate(t, repo, "id-1", "Welcome", "Start creating your notes!", at)
	assert.Equal(t, "id-1", created.ID)
	assert.True(t, at.Equal(created.CreatedAt))

	got, err := repo.FindByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNoteSQLite_NullColumnsReadAsEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteSQLite(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO notes (id, title, content, created_at) VALUES ('n', NULL, NULL, 1)`)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, "", got.Title)
	assert.Equal(t, "", got.Content)

	items, err := repo.List(ctx, repository.ListQuery{Filter: "x"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNoteSQLite_ListOrderAndFilter(t *testing.T) {
	repo := NewNoteSQLite(openTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 12, 7, 10, 0, 0, 0, time.UTC)

	mustCreate(t, repo, "a", "A", "x", base)
	mustCreate(t, repo, "b", "B", "y", base.Add(time.Second))
	mustCreate(t, repo, "c", "Café", "Groceries", base.Add(2*time.Second))

	items, err := repo.List(ctx, repository.ListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"c", "b", "a"}, ids(items))

	cases := []struct {
		filter string
		want   []string
	}{
		{"cafe", []string{"c"}},
		{"CAFÉ", []string{"c"}},
		{"groc", []string{"c"}},
		{"x", []string{"a"}},
		{"zzz", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			items, err := repo.List(ctx, repository.ListQuery{Filter: tc.filter})
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(items))
		})
	}
}

func TestNoteSQLite_ListTieBreaksByInsertion(t *testing.T) {
	repo := NewNoteSQLite(openTestDB(t))
	at := time.Date(2024, 12, 7, 10, 0, 0, 0, time.UTC)

	mustCreate(t, repo, "first", "1", "", at)
	mustCreate(t, repo, "second", "2", "", at)

	items, err := repo.List(context.Background(), repository.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, ids(items))
}

func TestNoteSQLite_UpdateAndDelete(t *testing.T) {
	repo := NewNoteSQLite(openTestDB(t))
	ctx := context.Background()
	at := time.Date(2024, 12, 7, 10, 0, 0, 0, time.UTC)
	mustCreate(t, repo, "a", "A", "x", at)

	require.NoError(t, repo.Update(ctx, "a", "A2", "z"))
	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, "z", got.Content)
	assert.True(t, at.Equal(got.CreatedAt))

	assert.ErrorIs(t, repo.Update(ctx, "missing", "t", "c"), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "a"))
	items, err := repo.List(ctx, repository.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, repo.Ping(ctx))
}

func TestNoteSQLite_ClosedDB(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteSQLite(db)
	require.NoError(t, db.Close())

	_, err := repo.List(context.Background(), repository.ListQuery{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func ids(items []model.Note) []string {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.ID)
	}
	return out
}
