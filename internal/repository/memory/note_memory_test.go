package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/model"
	"notekeeper/internal/repository"
)

func TestNoteMemory_CRUD(t *testing.T) {
	repo := NewNoteMemory()
	ctx := context.Background()
	at := time.Date(2024, 12, 7, 10, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, &model.Note{ID: "a", Title: "A", Content: "x", CreatedAt: at})
	require.NoError(t, err)
	assert.Equal(t, "a", created.ID)

	// returned records are copies
	created.Title = "mutated"
	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	require.NoError(t, repo.Update(ctx, "a", "A2", "z"))
	got, err = repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, at, got.CreatedAt)

	assert.ErrorIs(t, repo.Update(ctx, "missing", "", ""), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repository.ErrNotFound)
	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "a"))
	items, err := repo.List(ctx, repository.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNoteMemory_ListOrderAndFilter(t *testing.T) {
	repo := NewNoteMemory()
	ctx := context.Background()
	at := time.Date(2024, 12, 7, 10, 0, 0, 0, time.UTC)

	for _, n := range []model.Note{
		{ID: "a", Title: "A", Content: "x", CreatedAt: at},
		{ID: "tie", Title: "Résumé", Content: "", CreatedAt: at},
		{ID: "b", Title: "B", Content: "Buy MILK", CreatedAt: at.Add(time.Minute)},
	} {
		_, err := repo.Create(ctx, &n)
		require.NoError(t, err)
	}

	items, err := repo.List(ctx, repository.ListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "tie", items[1].ID)
	assert.Equal(t, "a", items[2].ID)

	items, err = repo.List(ctx, repository.ListQuery{Filter: "resume"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "tie", items[0].ID)

	items, err = repo.List(ctx, repository.ListQuery{Filter: "milk"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestNoteMemory_CanceledContext(t *testing.T) {
	repo := NewNoteMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx, repository.ListQuery{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNoteMemory_ConcurrentCreates(t *testing.T) {
	repo := NewNoteMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.Create(ctx, &model.Note{ID: string(rune('A' + i)), CreatedAt: time.Now()})
		}(i)
	}
	wg.Wait()

	items, err := repo.List(ctx, repository.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, items, 50)
}
