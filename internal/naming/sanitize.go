package naming

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	forbiddenRegex  = regexp.MustCompile(`[\\/:"*?<>|]`)
	underscoreRegex = regexp.MustCompile(`_+`)
)

// SanitizeTitle makes an episode title safe to embed in a filename.
// Whitespace runs become a single underscore, the characters \ / : " * ? < > |
// are dropped, repeated underscores collapse and edge underscores are
// trimmed. Applying it twice gives the same result as applying it once.
func SanitizeTitle(title string) string {
	s := whitespaceRegex.ReplaceAllString(title, "_")
	s = forbiddenRegex.ReplaceAllString(s, "")
	s = underscoreRegex.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
