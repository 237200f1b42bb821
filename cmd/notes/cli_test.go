package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/model"
	"notekeeper/internal/presenter"
	"notekeeper/internal/service"
)

// run executes one CLI invocation against the SQLite file at db, like a separate process would.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MINIO_ENDPOINT", "")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--driver", "sqlite", "--db", db}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func listJSON(t *testing.T, db string, args ...string) []model.Note {
	t.Helper()
	out, err := run(t, db, append([]string{"list", "--json"}, args...)...)
	require.NoError(t, err)
	var notes []model.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	return notes
}

func TestCLI_Workflow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "notes.db")

	out, err := run(t, db, "add", "--title", "A", "--content", "x")
	require.NoError(t, err)
	idA := strings.TrimSpace(out)

	out, err = run(t, db, "add", "-t", "B", "-c", "y")
	require.NoError(t, err)
	idB := strings.TrimSpace(out)

	notes := listJSON(t, db)
	require.Len(t, notes, 2)
	assert.Equal(t, idB, notes[0].ID)
	assert.Equal(t, idA, notes[1].ID)

	notes = listJSON(t, db, "--filter", "X")
	require.Len(t, notes, 1)
	assert.Equal(t, idA, notes[0].ID)

	_, err = run(t, db, "edit", idA, "--title", "A2")
	require.NoError(t, err)
	out, err = run(t, db, "show", idA)
	require.NoError(t, err)
	assert.Contains(t, out, "# A2")
	assert.Contains(t, out, "x")

	out, err = run(t, db, "dup", idA)
	require.NoError(t, err)
	assert.Contains(t, out, "Copy of A2")

	_, err = run(t, db, "rm", idB)
	require.NoError(t, err)

	out, err = run(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Copy of A2")
	assert.Contains(t, out, "A2")
	assert.NotContains(t, out, idB)
}

func TestCLI_SeedsEmptyStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "notes.db")

	notes := listJSON(t, db)
	require.Len(t, notes, 1)
	assert.Equal(t, presenter.WelcomeTitle, notes[0].Title)
}

func TestCLI_Errors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "notes.db")
	missing := "00000000-0000-4000-8000-000000000000"

	_, err := run(t, db, "add", "--title", "only title")
	var ve *presenter.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, presenter.MsgTitleAndContent, ve.Message)

	_, err = run(t, db, "rm", missing)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = run(t, db, "edit", missing, "--title", "t")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = run(t, db, "quick", "")
	assert.True(t, presenter.IsValidationError(err))

	_, err = run(t, db, "export")
	assert.EqualError(t, err, "export disabled: object storage is not configured")

	_, err = run(t, db, "show")
	assert.Error(t, err)
}

func TestCLI_Quick(t *testing.T) {
	db := filepath.Join(t.TempDir(), "notes.db")

	out, err := run(t, db, "quick", "Call mom")
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	notes := listJSON(t, db)
	require.Len(t, notes, 1)
	assert.Equal(t, id, notes[0].ID)
	assert.Equal(t, "", notes[0].Content)
}
