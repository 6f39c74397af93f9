// Package paths resolves where seasonsort keeps its config, audit database
// and logs.
//
// When running with sudo these resolve to the invoking user's directories
// (via SUDO_USER) rather than root's. SEASONSORT_HOME overrides the
// application directory entirely.
package paths

import (
	"os"
	"os/user"
	"path/filepath"
)

// HomeEnv names the variable that overrides AppDir.
const HomeEnv = "SEASONSORT_HOME"

// UserHomeDir returns the home directory of the actual user.
func UserHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		if u, err := user.Lookup(sudoUser); err == nil {
			return u.HomeDir, nil
		}
	}
	return os.UserHomeDir()
}

// AppDir returns ~/.config/seasonsort for the actual user, or $SEASONSORT_HOME.
func AppDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "seasonsort"), nil
}

// ConfigPath returns the path to config.toml.
func ConfigPath() (string, error) {
	return inAppDir("config.toml")
}

// DatabasePath returns the path to the rename history database.
func DatabasePath() (string, error) {
	return inAppDir("history.db")
}

// LogPath returns the default log file path.
func LogPath() (string, error) {
	return inAppDir(filepath.Join("logs", "seasonsort.log"))
}

func inAppDir(name string) (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
