package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/harmonia-music/harmonia/internal/track"
)

const (
	// DefaultBaseURL is the public catalog API endpoint.
	DefaultBaseURL = "https://saavn.dev/api"

	defaultLimit = 25
)

// Client provides access to the catalog search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a catalog client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.With().Str("component", "catalog").Logger(),
	}
}

// SearchSongs searches the catalog and returns playable tracks. Songs
// without a stream URL are dropped from the results.
func (c *Client) SearchSongs(ctx context.Context, query string, limit int) ([]track.Track, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s/search/songs?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	tracks := convertSongs(result.Data.Results)
	c.log.Debug().Str("query", query).Int("results", len(tracks)).Msg("song search")
	return tracks, nil
}

// convertSongs maps raw API results to tracks, keeping only those with
// a stream URL.
func convertSongs(results []songResult) []track.Track {
	tracks := make([]track.Track, 0, len(results))
	for i := range results {
		s := &results[i]
		t := track.Track{
			ID:    s.ID,
			Title: html.UnescapeString(s.Name),
			Artists: lo.Map(s.Artists.Primary, func(a artistRef, _ int) string {
				return html.UnescapeString(a.Name)
			}),
			ArtworkURL:   bestAsset(s.Image),
			StreamURL:    bestAsset(s.DownloadURL),
			DurationHint: time.Duration(s.Duration) * time.Second,
		}
		if !t.Playable() {
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks
}

// bestAsset picks the highest quality variant. Assets come in
// ascending quality order.
func bestAsset(assets []asset) string {
	for i := len(assets) - 1; i >= 0; i-- {
		if assets[i].URL != "" {
			return assets[i].URL
		}
	}
	return ""
}
