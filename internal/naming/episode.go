package naming

import (
	"fmt"
	"regexp"
	"strconv"
)

// episodeRegex matches "S01E02", "s1e2", "1x02" and friends. RE2 has no
// lookahead, so the trailing (?:\D|$) stands in for "not followed by a
// digit". Only the first match is ever used.
var episodeRegex = regexp.MustCompile(`[sS]?(\d{1,2})[eExX](\d{1,2})(?:\D|$)`)

// seasonFolderRegex matches a canonical season folder name.
var seasonFolderRegex = regexp.MustCompile(`^S\d{2}$`)

// ExtractEpisode returns the season and episode numbers embedded in
// filename as two-digit zero-padded strings. When the filename holds
// several identifiers the first one wins. Both values are empty when
// nothing matches.
func ExtractEpisode(filename string) (season, episode string) {
	match := episodeRegex.FindStringSubmatch(filename)
	if len(match) < 3 {
		return "", ""
	}
	return padNumber(match[1]), padNumber(match[2])
}

// IsSeasonFolder reports whether name is exactly "S" followed by two digits.
func IsSeasonFolder(name string) bool {
	return seasonFolderRegex.MatchString(name)
}

// FormatSeasonFolder returns the folder name for a two-digit season.
func FormatSeasonFolder(season string) string {
	return "S" + season
}

func padNumber(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return digits
	}
	return fmt.Sprintf("%02d", n)
}
