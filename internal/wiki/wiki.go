// Package wiki scrapes episode titles from wiki "List of ... episodes"
// pages. Each season is an <h3 id="Season_N..."> heading followed by a
// table.wikiepisodetable whose rows carry the episode number in the first
// cell and the quoted title in the second.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Nomadcxx/seasonsort/internal/logging"
	"github.com/Nomadcxx/seasonsort/internal/titles"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

const component = "wiki"

var (
	// ErrStatus is returned for non-2xx HTTP responses.
	ErrStatus = errors.New("unexpected HTTP status")
	// ErrNoEpisodes is returned when a page has no usable episode tables.
	ErrNoEpisodes = errors.New("no episode tables found")
)

var (
	seasonIDRegex = regexp.MustCompile(`Season_(\d+)`)
	quotedRegex   = regexp.MustCompile(`"(.*?)"`)
	tagRegex      = regexp.MustCompile(`<[^>]*>`)
)

// Scraper downloads and parses episode list pages.
type Scraper struct {
	client    *http.Client
	userAgent string
	logger    *logging.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		s.client = c
	}
}

// WithUserAgent sets the User-Agent header; some wikis reject requests
// without one.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		s.userAgent = ua
	}
}

// WithTimeout sets the timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client = &http.Client{Timeout: d}
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScraper creates a Scraper with a 30 second HTTP timeout by default.
func NewScraper(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads url and parses its episode tables.
func (s *Scraper) Fetch(ctx context.Context, url string) (titles.Titles, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	s.logger.Debug(component, "Fetching episode list", logging.F("url", url))
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s from %s", ErrStatus, resp.Status, url)
	}

	t, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	s.logger.Info(component, "Scraped episode titles",
		logging.F("url", url),
		logging.F("seasons", len(t)),
		logging.F("episodes", t.EpisodeCount()))
	return t, nil
}

// Parse extracts the season → episode → title mapping from an episode
// list page.
//
// A row whose title cell has no quoted title reuses the title of the row
// before it, which is how multi-part episodes render. A first cell holding
// several numbers separated by <hr/> assigns the same title to each.
func Parse(r io.Reader) (titles.Titles, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	nodes := doc.Find("h3, table.wikiepisodetable")
	result := titles.Titles{}
	previousTitle := ""

	for i := 0; i < nodes.Length(); i++ {
		header := nodes.Eq(i)
		if goquery.NodeName(header) != "h3" {
			continue
		}

		season, ok := seasonNumber(header)
		if !ok {
			continue
		}
		table := nextTable(nodes, i)
		if table == nil {
			continue
		}

		episodes := make(map[int]string)
		table.Find("tr").Each(func(idx int, row *goquery.Selection) {
			if idx == 0 {
				return // header
			}
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			title := quotedTitle(cells.Eq(1).Text())
			if title == "" {
				title = previousTitle
			}
			previousTitle = title

			numbersHTML, _ := cells.Eq(0).Html()
			for _, ep := range episodeNumbers(numbersHTML) {
				episodes[ep] = title
			}
		})
		result[season] = episodes
	}

	if len(result) == 0 {
		return nil, ErrNoEpisodes
	}
	return result, nil
}

func seasonNumber(header *goquery.Selection) (int, bool) {
	id, _ := header.Attr("id")
	if !strings.HasPrefix(id, "Season") {
		return 0, false
	}
	m := seasonIDRegex.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// nextTable returns the first episode table after position i in document
// order.
func nextTable(nodes *goquery.Selection, i int) *goquery.Selection {
	for j := i + 1; j < nodes.Length(); j++ {
		if n := nodes.Eq(j); goquery.NodeName(n) == "table" {
			return n
		}
	}
	return nil
}

func quotedTitle(text string) string {
	m := quotedRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return norm.NFC.String(strings.TrimSpace(m[1]))
}

func episodeNumbers(cellHTML string) []int {
	var out []int
	for _, part := range strings.Split(cellHTML, "<hr/>") {
		text := strings.TrimSpace(html.UnescapeString(tagRegex.ReplaceAllString(part, "")))
		n, err := strconv.Atoi(text)
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}
