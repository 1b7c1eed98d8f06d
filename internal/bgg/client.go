// Package bgg talks to the BoardGameGeek XMLAPI2 and maps its records to
// the local game shape. It performs no persistence.
package bgg

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://boardgamegeek.com/xmlapi2"
	userAgent      = "Cardboard/1.0 (board game collection manager)"

	// BGG answers 202 while a newly requested item is still being queued;
	// retry a few times before telling the caller to come back later.
	retryAttempts = 4
	retryDelay    = 2 * time.Second

	maxSearchResults = 30
)

var (
	// ErrNotFound means the catalog has no item with the given id.
	ErrNotFound = errors.New("bgg: game not found")
	// ErrUnavailable means the catalog could not be reached or returned garbage.
	ErrUnavailable = errors.New("bgg: upstream unavailable")
	// ErrStillProcessing means BGG queued the item; the request is retryable.
	ErrStillProcessing = errors.New("bgg: upstream still processing")
)

// Client queries the BGG XMLAPI2.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	RetryDelay time.Duration
}

// NewClient returns a client against the public BGG API.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		RetryDelay: retryDelay,
	}
}

// DefaultClient is used by the HTTP proxy handlers.
var DefaultClient = NewClient()

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return c.HTTPClient.Do(req)
}

// Search looks up games by name. No matches is an empty slice, not an error.
// Results are ordered newest edition first, unknown years last.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "boardgame,boardgameexpansion")

	resp, err := c.get(ctx, "/search", params)
	if err != nil {
		log.Printf("BGG search HTTP error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("BGG search failed: status=%d query=%q", resp.StatusCode, query)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var parsed searchResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		log.Printf("BGG search XML parse error: %v", err)
		return nil, fmt.Errorf("%w: malformed response", ErrUnavailable)
	}

	results := make([]SearchResult, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		name := primaryName(item.Names)
		if item.ID == 0 || name == "" {
			continue
		}
		results = append(results, SearchResult{
			BGGID:         item.ID,
			Name:          name,
			YearPublished: intAttr(item.YearPublished),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		yi, yj := results[i].YearPublished, results[j].YearPublished
		if (yi == nil) != (yj == nil) {
			return yj == nil
		}
		if yi == nil {
			return false
		}
		return *yi > *yj
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	log.Printf("BGG search %q returned %d results", query, len(results))
	return results, nil
}

// FetchGame fetches full details for one catalog id. BGG's 202 "queued"
// response is retried before giving up with ErrStillProcessing.
func (c *Client) FetchGame(ctx context.Context, bggID int64) (*GameDetails, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(bggID, 10))
	params.Set("stats", "1")

	var body []byte
	for attempt := 1; ; attempt++ {
		resp, err := c.get(ctx, "/thing", params)
		if err != nil {
			log.Printf("BGG game fetch HTTP error (attempt %d): %v", attempt, err)
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		if resp.StatusCode == http.StatusAccepted {
			resp.Body.Close()
			log.Printf("BGG returned 202 for bgg_id=%d (attempt %d/%d)", bggID, attempt, retryAttempts)
			if attempt >= retryAttempts {
				return nil, ErrStillProcessing
			}
			select {
			case <-time.After(c.RetryDelay):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			log.Printf("BGG game fetch failed: status=%d bgg_id=%d", resp.StatusCode, bggID)
			return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		break
	}

	var parsed thingResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		log.Printf("BGG game XML parse error for bgg_id=%d: %v", bggID, err)
		return nil, fmt.Errorf("%w: malformed response", ErrUnavailable)
	}
	if len(parsed.Items) == 0 {
		return nil, ErrNotFound
	}
	item := parsed.Items[0]

	name := primaryName(item.Names)
	if name == "" {
		name = "Unknown"
	}

	details := &GameDetails{
		BGGID:         bggID,
		Name:          name,
		YearPublished: intAttr(item.YearPublished),
		MinPlayers:    intAttr(item.MinPlayers),
		MaxPlayers:    intAttr(item.MaxPlayers),
		MinPlaytime:   intAttr(item.MinPlaytime),
		MaxPlaytime:   intAttr(item.MaxPlaytime),
		Difficulty:    weight(item.Statistics.Ratings.AverageWeight),
		Description:   description(item.Description),
		ImageURL:      fixURL(item.Image),
		ThumbnailURL:  fixURL(item.Thumbnail),
		Categories:    linkList(item.Links, "boardgamecategory"),
		Mechanics:     linkList(item.Links, "boardgamemechanic"),
		Designers:     linkList(item.Links, "boardgamedesigner"),
		Publishers:    linkList(item.Links, "boardgamepublisher"),
	}

	log.Printf("BGG game fetched: bgg_id=%d name=%q", bggID, details.Name)
	return details, nil
}

func primaryName(names []nameElement) string {
	for _, n := range names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return ""
}

func intAttr(v *valueAttr) *int {
	if v == nil || v.Value == "" {
		return nil
	}
	n, err := strconv.Atoi(v.Value)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}

// weight rounds the average weight to two decimals; 0 means unrated.
func weight(v *valueAttr) *float64 {
	if v == nil || v.Value == "" {
		return nil
	}
	w, err := strconv.ParseFloat(v.Value, 64)
	if err != nil || w <= 0 {
		return nil
	}
	w = float64(int(w*100+0.5)) / 100
	return &w
}

var (
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
	entityReplacer = strings.NewReplacer(
		"&#10;", "\n",
		"&mdash;", "—",
		"&ndash;", "–",
		"&quot;", `"`,
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
	)
)

// description strips the HTML entities and tags BGG embeds in descriptions.
func description(raw string) *string {
	text := strings.TrimSpace(tagPattern.ReplaceAllString(entityReplacer.Replace(raw), ""))
	if text == "" {
		return nil
	}
	return &text
}

// fixURL prepends https: to the protocol-relative URLs BGG returns.
func fixURL(u string) *string {
	if u == "" {
		return nil
	}
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	return &u
}

// linkList collects link values of one type into a JSON-encoded array.
func linkList(links []linkElement, linkType string) *string {
	var values []string
	for _, l := range links {
		if l.Type == linkType && l.Value != "" {
			values = append(values, l.Value)
		}
	}
	if len(values) == 0 {
		return nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	s := string(encoded)
	return &s
}
