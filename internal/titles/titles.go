// Package titles holds the season → episode → title mapping used to embed
// episode titles into filenames, and its JSON file format:
//
//	{"1": {"1": "Pilot", "2": "Second"}, "2": {"1": "Return"}}
//
// Keys are unpadded decimal season and episode numbers.
package titles

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// ErrMalformed is returned when a title file does not have the expected shape.
var ErrMalformed = errors.New("malformed title file")

// Titles maps season number to episode number to episode title.
type Titles map[int]map[int]string

// Lookup returns the title of an episode. It reports false when the season
// or episode is missing or the stored title is empty.
func (t Titles) Lookup(season, episode int) (string, bool) {
	episodes, ok := t[season]
	if !ok {
		return "", false
	}
	title, ok := episodes[episode]
	if !ok || title == "" {
		return "", false
	}
	return title, true
}

// Set stores a title, creating the season on demand.
func (t Titles) Set(season, episode int, title string) {
	if t[season] == nil {
		t[season] = make(map[int]string)
	}
	t[season][episode] = title
}

// Seasons returns the season numbers in ascending order.
func (t Titles) Seasons() []int {
	seasons := make([]int, 0, len(t))
	for s := range t {
		seasons = append(seasons, s)
	}
	sort.Ints(seasons)
	return seasons
}

// EpisodeCount returns the number of episodes across all seasons.
func (t Titles) EpisodeCount() int {
	n := 0
	for _, episodes := range t {
		n += len(episodes)
	}
	return n
}

// Load reads a title file. Any problem with the file, including a missing
// file, is reported with the path so callers can fail before touching media.
func Load(path string) (Titles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read title file %s: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes the JSON form of a title mapping.
func Parse(data []byte) (Titles, error) {
	var raw map[string]map[string]string
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after top-level object", ErrMalformed)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}

	t := make(Titles, len(raw))
	for seasonKey, episodes := range raw {
		season, err := parseKey(seasonKey)
		if err != nil {
			return nil, fmt.Errorf("%w: season key %q: %v", ErrMalformed, seasonKey, err)
		}
		if episodes == nil {
			return nil, fmt.Errorf("%w: season %d must be an object", ErrMalformed, season)
		}
		t[season] = make(map[int]string, len(episodes))
		for episodeKey, title := range episodes {
			episode, err := parseKey(episodeKey)
			if err != nil {
				return nil, fmt.Errorf("%w: season %d episode key %q: %v", ErrMalformed, season, episodeKey, err)
			}
			t[season][episode] = title
		}
	}
	return t, nil
}

// Save writes t as indented JSON, creating parent directories.
func (t Titles) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create directory for %s: %w", path, err)
	}

	data, err := t.MarshalIndent()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MarshalIndent encodes t with two-space indentation and without HTML
// escaping, so titles stay readable.
func (t Titles) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("unable to encode titles: %w", err)
	}
	return buf.Bytes(), nil
}

// parseKey accepts only the canonical decimal form, so "1" and "01" can
// never name the same season.
func parseKey(key string) (int, error) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	if strconv.Itoa(n) != key {
		return 0, errors.New("must be unpadded decimal")
	}
	return n, nil
}
