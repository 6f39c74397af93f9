package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapTitles map[int]map[int]string

func (m mapTitles) Lookup(season, episode int) (string, bool) {
	title, ok := m[season][episode]
	return title, ok && title != ""
}

func TestDescribe(t *testing.T) {
	titles := mapTitles{1: {2: "Pilot Episode"}, 3: {7: `What Is "Truth"? / 2`}}

	tests := []struct {
		name       string
		filename   string
		titles     TitleLookup
		wantTarget string
		wantFolder string
	}{
		{
			name:       "titles disabled",
			filename:   "show.s1e2.mkv",
			titles:     nil,
			wantTarget: "Show_S01E02.mkv",
			wantFolder: "S01",
		},
		{
			name:       "title embedded",
			filename:   "show.s1e2.mkv",
			titles:     titles,
			wantTarget: "Show_S01E02_Pilot_Episode.mkv",
			wantFolder: "S01",
		},
		{
			name:       "title sanitized",
			filename:   "Show - 3x07 - HDTV.avi",
			titles:     titles,
			wantTarget: "Show_S03E07_What_Is_Truth_2.avi",
			wantFolder: "S03",
		},
		{
			name:       "episode missing from season",
			filename:   "show.S01E09.mp4",
			titles:     titles,
			wantTarget: "Show_S01E09.mp4",
			wantFolder: "S01",
		},
		{
			name:       "season missing",
			filename:   "show.S05E01.mp4",
			titles:     titles,
			wantTarget: "Show_S05E01.mp4",
			wantFolder: "S05",
		},
		{
			name:       "extension case kept",
			filename:   "show.s2e3.MKV",
			titles:     nil,
			wantTarget: "Show_S02E03.MKV",
			wantFolder: "S02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Describe(tt.filename, "Show", tt.titles)
			assert.True(t, d.Identified())
			assert.Equal(t, tt.filename, d.Original)
			assert.Equal(t, tt.wantTarget, d.TargetName)
			assert.Equal(t, tt.wantFolder, d.SeasonFolder)
		})
	}
}

func TestDescribe_NotIdentified(t *testing.T) {
	d := Describe("random_notes.txt", "Show", mapTitles{1: {1: "x"}})

	assert.False(t, d.Identified())
	assert.Equal(t, "txt", d.Extension)
	assert.Empty(t, d.Season)
	assert.Empty(t, d.Episode)
	assert.Empty(t, d.TargetName)
	assert.Empty(t, d.SeasonFolder)
}

func TestDescribe_Deterministic(t *testing.T) {
	titles := mapTitles{1: {2: "Pilot Episode"}}
	first := Describe("show.s1e2.mkv", "Show", titles)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Describe("show.s1e2.mkv", "Show", titles))
	}
}

func TestDescribe_ShowNameVerbatim(t *testing.T) {
	d := Describe("ep.1x01.webm", "My Show: Redux", nil)
	assert.Equal(t, "My Show: Redux_S01E01.webm", d.TargetName)
}

func TestDescribe_EmptyTitleOmitted(t *testing.T) {
	d := Describe("ep.1x01.webm", "Show", mapTitles{1: {1: `"?"`}})
	assert.Equal(t, "Show_S01E01.webm", d.TargetName)
}
