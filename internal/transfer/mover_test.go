package transfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMover_Rename(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "show.s1e2.mkv")
	dst := filepath.Join(dir, "Show_S01E02.mkv")
	writeFile(t, src, "video")

	m := NewMover(0)
	require.NoError(t, m.Rename(src, dst))

	assert.NoFileExists(t, src)
	assert.Equal(t, "video", readFile(t, dst))
}

func TestMover_RenameSamePath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Show_S01E02.mkv")
	writeFile(t, src, "video")

	require.NoError(t, NewMover(0).Rename(src, src))
	assert.FileExists(t, src)
}

func TestMover_RenameCollision(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.s1e2.mkv")
	dst := filepath.Join(dir, "Show_S01E02.mkv")
	writeFile(t, src, "new")
	writeFile(t, dst, "existing")

	err := NewMover(0).Rename(src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTargetExists)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, OpRename, opErr.Op)
	assert.Equal(t, dst, opErr.Path)

	assert.Equal(t, "new", readFile(t, src))
	assert.Equal(t, "existing", readFile(t, dst))
}

func TestMover_RenameMissingSource(t *testing.T) {
	dir := t.TempDir()

	err := NewMover(0).Rename(filepath.Join(dir, "gone.mkv"), filepath.Join(dir, "x.mkv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMover_MoveInto(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Show_S01E02.mkv")
	season := filepath.Join(dir, "S01")
	writeFile(t, src, "video")

	m := NewMover(0)
	require.NoError(t, m.EnsureDir(season))

	dst, err := m.MoveInto(src, season)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(season, "Show_S01E02.mkv"), dst)
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
}

func TestMover_MoveIntoCollision(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Show_S01E02.mkv")
	season := filepath.Join(dir, "S01")
	require.NoError(t, os.Mkdir(season, 0755))
	writeFile(t, src, "new")
	writeFile(t, filepath.Join(season, "Show_S01E02.mkv"), "old")

	_, err := NewMover(0).MoveInto(src, season)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTargetExists)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, OpMove, opErr.Op)
	assert.Equal(t, "new", readFile(t, src))
}

func TestMover_EnsureDir(t *testing.T) {
	dir := t.TempDir()
	season := filepath.Join(dir, "S02")

	m := NewMover(0750)
	require.NoError(t, m.EnsureDir(season))
	require.NoError(t, m.EnsureDir(season), "existing folder is fine")

	info, err := os.Stat(season)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0750), info.Mode().Perm())
}

func TestMover_EnsureDirOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "S01")
	writeFile(t, path, "not a folder")

	err := NewMover(0).EnsureDir(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDestinationNotWritable)
}

func TestOpError_Message(t *testing.T) {
	err := &OpError{Op: OpMove, Path: "/tmp/x", Err: ErrTargetExists}
	assert.Equal(t, "move /tmp/x: target already exists", err.Error())
}

func TestCheckAvailable(t *testing.T) {
	dir := t.TempDir()
	free := filepath.Join(dir, "free.mkv")
	taken := filepath.Join(dir, "taken.mkv")
	writeFile(t, taken, "x")

	assert.NoError(t, CheckAvailable(OpMove, free))

	err := CheckAvailable(OpMove, taken)
	assert.ErrorIs(t, err, ErrTargetExists)
}
