package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nomadcxx/seasonsort/internal/database"
	"github.com/Nomadcxx/seasonsort/internal/logging"
	"github.com/Nomadcxx/seasonsort/internal/organizer"
	"github.com/Nomadcxx/seasonsort/internal/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassHandler_RunsPassPerBatch(t *testing.T) {
	dir := t.TempDir()
	session, err := organizer.NewSession(dir, "Fringe")
	require.NoError(t, err)

	var out bytes.Buffer
	h := &passHandler{session: session, logger: logging.Nop(), out: &out}

	touch(t, dir, "fringe.s1e1.mkv")
	require.NoError(t, h.HandleBatch(context.Background(), nil))

	touch(t, dir, "fringe.s1e2.mkv")
	require.NoError(t, h.HandleBatch(context.Background(), []watcher.FileEvent{
		{Type: watcher.EventCreate, Path: filepath.Join(dir, "fringe.s1e2.mkv")},
	}))

	assert.FileExists(t, filepath.Join(dir, "S01", "Fringe_S01E01.mkv"))
	assert.FileExists(t, filepath.Join(dir, "S01", "Fringe_S01E02.mkv"))
	assert.Equal(t, []string{"Fringe_S01E01.mkv", "Fringe_S01E02.mkv"}, session.Processed())
}

func TestPassHandler_StopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "fringe.s1e1.mkv")
	session, err := organizer.NewSession(dir, "Fringe")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := &passHandler{session: session, logger: logging.Nop(), out: &bytes.Buffer{}}
	assert.ErrorIs(t, h.HandleBatch(ctx, nil), context.Canceled)
	assert.FileExists(t, filepath.Join(dir, "fringe.s1e1.mkv"))
}

func TestPassHandler_IgnoresOwnRenames(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "S01")
	require.NoError(t, os.MkdirAll(dir, 0755))
	touch(t, dir, "Fringe_S01E01.mkv")

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	session, err := organizer.NewSession(dir, "Fringe", organizer.WithRecorder(db))
	require.NoError(t, err)

	var out bytes.Buffer
	h := &passHandler{session: session, logger: logging.Nop(), out: &out}
	require.NoError(t, h.HandleBatch(context.Background(), []watcher.FileEvent{
		{Type: watcher.EventCreate, Path: filepath.Join(dir, "Fringe_S01E01.mkv")},
	}))

	assert.Empty(t, out.String())
	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestPassHandler_QuietWhenNothingChanged(t *testing.T) {
	dir := t.TempDir()
	session, err := organizer.NewSession(dir, "Fringe")
	require.NoError(t, err)

	var out bytes.Buffer
	h := &passHandler{session: session, logger: logging.Nop(), out: &out}
	require.NoError(t, h.HandleBatch(context.Background(), []watcher.FileEvent{
		{Type: watcher.EventCreate, Path: filepath.Join(dir, "gone.s1e4.mkv")},
	}))

	assert.Empty(t, out.String())
}
