package naming

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEpisode(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantSeason  string
		wantEpisode string
	}{
		{"lowercase se", "show.s1e2.mkv", "01", "02"},
		{"uppercase padded", "Show.S01E02.1080p.mkv", "01", "02"},
		{"x separator", "Show 3x7.avi", "03", "07"},
		{"uppercase X", "Show.10X12.mp4", "10", "12"},
		{"no s prefix", "show_2e05_final.mkv", "02", "05"},
		{"end of string", "s04e09", "04", "09"},
		{"first match wins", "Show.S01E02.S01E03.mkv", "01", "02"},
		{"three digit episode rejected", "Show.S01E123.mkv", "", ""},
		{"three digit season uses last two", "Show.123e45.mkv", "23", "45"},
		{"skips digit-trailed candidate", "a1e234 b2x3.mkv", "02", "03"},
		{"no identifier", "random_notes.txt", "", ""},
		{"resolution is not an identifier", "Movie.1920x1080.mkv", "", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			season, episode := ExtractEpisode(tt.filename)
			assert.Equal(t, tt.wantSeason, season)
			assert.Equal(t, tt.wantEpisode, episode)
		})
	}
}

func TestExtractEpisode_AlwaysTwoDigits(t *testing.T) {
	for s := 0; s < 100; s += 7 {
		for e := 0; e < 100; e += 11 {
			filename := fmt.Sprintf("x.%de%d.mkv", s, e)
			season, episode := ExtractEpisode(filename)
			assert.Len(t, season, 2, filename)
			assert.Len(t, episode, 2, filename)
		}
	}
}

func TestIsSeasonFolder(t *testing.T) {
	assert.True(t, IsSeasonFolder("S01"))
	assert.True(t, IsSeasonFolder("S99"))
	assert.False(t, IsSeasonFolder("S1"))
	assert.False(t, IsSeasonFolder("s01"))
	assert.False(t, IsSeasonFolder("S001"))
	assert.False(t, IsSeasonFolder("Season 01"))
}

func TestIsVideoFile(t *testing.T) {
	for _, name := range []string{"a.mp4", "a.MKV", "a.avi", "a.Mov", "a.flv", "a.webm"} {
		assert.True(t, IsVideoFile(name), name)
	}
	for _, name := range []string{"a.txt", "a.srt", "a", ".mkv", "a.mkv.part"} {
		assert.False(t, IsVideoFile(name), name)
	}
}
