package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenPath_Migrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	db, err := OpenPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())

	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)
	require.NoError(t, db.Close())

	// reopening must not re-run migrations
	db, err = OpenPath(path)
	require.NoError(t, err)
	defer db.Close()
	v, err = db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)
}

func TestRunLifecycle(t *testing.T) {
	db := setupTestDB(t)

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.StartRun(Run{
		ID:          "run-1",
		Directory:   "/media/show",
		ShowName:    "Show",
		EmbedTitles: true,
		StartedAt:   started,
	}))

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].FinishedAt.IsZero())
	assert.True(t, runs[0].EmbedTitles)
	assert.True(t, started.Equal(runs[0].StartedAt))

	require.NoError(t, db.FinishRun("run-1", 3, 1))

	runs, err = db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].FinishedAt.IsZero())
	assert.Equal(t, 3, runs[0].Renamed)
	assert.Equal(t, 1, runs[0].Skipped)
}

func TestFinishRun_Unknown(t *testing.T) {
	db := setupTestDB(t)
	assert.Error(t, db.FinishRun("missing", 0, 0))
}

func TestRecordRename(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.StartRun(Run{ID: "run-1", Directory: "/d", ShowName: "Show"}))
	require.NoError(t, db.StartRun(Run{ID: "run-2", Directory: "/d", ShowName: "Show"}))

	require.NoError(t, db.RecordRename(RenameRecord{
		RunID:      "run-1",
		SourcePath: "/d/show.s1e1.mkv",
		TargetPath: "/d/S01/Show_S01E01.mkv",
		Season:     "01",
		Episode:    "01",
		Moved:      true,
		SizeBytes:  1024,
	}))
	require.NoError(t, db.RecordRename(RenameRecord{
		RunID:      "run-1",
		SourcePath: "/d/show.s1e2.mkv",
		TargetPath: "/d/S01/Show_S01E02.mkv",
		Season:     "01",
		Episode:    "02",
		Moved:      true,
	}))
	require.NoError(t, db.RecordRename(RenameRecord{
		RunID:      "run-2",
		SourcePath: "/d/S02/x.2x1.mkv",
		TargetPath: "/d/S02/Show_S02E01.mkv",
		Season:     "02",
		Episode:    "01",
	}))

	recent, err := db.RecentRenames(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "/d/S02/Show_S02E01.mkv", recent[0].TargetPath)
	assert.False(t, recent[0].Moved)
	assert.Equal(t, "/d/S01/Show_S01E02.mkv", recent[1].TargetPath)

	forRun, err := db.RenamesForRun("run-1")
	require.NoError(t, err)
	require.Len(t, forRun, 2)
	assert.Equal(t, "/d/show.s1e1.mkv", forRun[0].SourcePath)
	assert.True(t, forRun[0].Moved)
	assert.Equal(t, int64(1024), forRun[0].SizeBytes)
	assert.False(t, forRun[0].ExecutedAt.IsZero())
}
