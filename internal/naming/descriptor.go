package naming

import (
	"fmt"
	"strconv"
)

// TitleLookup resolves an episode title by season and episode number.
// A false result means the title is unknown.
type TitleLookup interface {
	Lookup(season, episode int) (string, bool)
}

// Descriptor is everything derived from one directory entry's filename.
// It is built once by Describe and never mutated afterwards.
type Descriptor struct {
	Original     string
	Extension    string
	Season       string // two digits, empty when not identified
	Episode      string // two digits, empty when not identified
	Title        string // sanitized, empty when unknown or not embedded
	TargetName   string
	SeasonFolder string
}

// Identified reports whether a season and episode were found.
func (d Descriptor) Identified() bool {
	return d.Season != "" && d.Episode != ""
}

// Describe extracts the season and episode from filename and, when they are
// present, computes the target filename and season folder for show. titles
// may be nil; a missing title only drops the title suffix.
func Describe(filename, show string, titles TitleLookup) Descriptor {
	d := Descriptor{
		Original:  filename,
		Extension: Extension(filename),
	}

	d.Season, d.Episode = ExtractEpisode(filename)
	if !d.Identified() {
		return d
	}

	d.Title = lookupTitle(titles, d.Season, d.Episode)
	d.TargetName = FormatEpisodeFilename(show, d.Season, d.Episode, d.Title, d.Extension)
	d.SeasonFolder = FormatSeasonFolder(d.Season)
	return d
}

// FormatEpisodeFilename builds "{show}_S{season}E{episode}[_{title}].{ext}".
// title must already be sanitized.
func FormatEpisodeFilename(show, season, episode, title, ext string) string {
	name := fmt.Sprintf("%s_S%sE%s", show, season, episode)
	if title != "" {
		name += "_" + title
	}
	if ext != "" {
		name += "." + ext
	}
	return name
}

func lookupTitle(titles TitleLookup, season, episode string) string {
	if titles == nil {
		return ""
	}
	s, err := strconv.Atoi(season)
	if err != nil {
		return ""
	}
	e, err := strconv.Atoi(episode)
	if err != nil {
		return ""
	}
	title, ok := titles.Lookup(s, e)
	if !ok {
		return ""
	}
	return SanitizeTitle(title)
}
