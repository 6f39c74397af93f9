package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHomeDir_NoSudo(t *testing.T) {
	t.Setenv("SUDO_USER", "")

	got, err := UserHomeDir()
	require.NoError(t, err)

	expected, _ := os.UserHomeDir()
	assert.Equal(t, expected, got)
}

func TestUserHomeDir_WithSudoUser(t *testing.T) {
	currentUser, err := user.Current()
	if err != nil {
		t.Skip("Cannot get current user")
	}
	if currentUser.Username == "root" {
		t.Skip("SUDO_USER=root is ignored")
	}
	t.Setenv("SUDO_USER", currentUser.Username)

	got, err := UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, currentUser.HomeDir, got)
}

func TestUserHomeDir_SudoUserRoot(t *testing.T) {
	t.Setenv("SUDO_USER", "root")

	got, err := UserHomeDir()
	require.NoError(t, err)

	expected, _ := os.UserHomeDir()
	assert.Equal(t, expected, got)
}

func TestAppDir_Override(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := AppDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	cfg, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), cfg)

	db, err := DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history.db"), db)

	logPath, err := LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs", "seasonsort.log"), logPath)
}

func TestAppDir_Default(t *testing.T) {
	t.Setenv(HomeEnv, "")
	t.Setenv("SUDO_USER", "")

	got, err := AppDir()
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "seasonsort"), got)
}
