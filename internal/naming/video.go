package naming

import (
	"path/filepath"
	"strings"
)

var videoExtensions = map[string]bool{
	"mp4":  true,
	"mkv":  true,
	"avi":  true,
	"mov":  true,
	"flv":  true,
	"webm": true,
}

// Extension returns the extension of filename without its leading dot,
// keeping the original case. Leading dots of hidden files do not count,
// so ".mkv" has no extension.
func Extension(filename string) string {
	base := strings.TrimLeft(filepath.Base(filename), ".")
	return strings.TrimPrefix(filepath.Ext(base), ".")
}

// IsVideoExtension reports whether ext (without the dot) is one of the
// supported video containers. The comparison ignores case.
func IsVideoExtension(ext string) bool {
	return videoExtensions[strings.ToLower(ext)]
}

// IsVideoFile reports whether filename carries a supported video extension.
func IsVideoFile(filename string) bool {
	return IsVideoExtension(Extension(filename))
}
