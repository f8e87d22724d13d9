package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
	"success": true,
	"data": {
		"total": 2,
		"results": [
			{
				"id": "song-1",
				"name": "Weightless &amp; Free",
				"duration": 212,
				"artists": {"primary": [{"id": "a1", "name": "First Artist"}, {"id": "a2", "name": "Second Artist"}]},
				"image": [
					{"quality": "50x50", "url": "https://img.example.com/small.jpg"},
					{"quality": "500x500", "url": "https://img.example.com/large.jpg"}
				],
				"downloadUrl": [
					{"quality": "96kbps", "url": "https://cdn.example.com/song-1-lo.mp4"},
					{"quality": "320kbps", "url": "https://cdn.example.com/song-1-hi.mp4"}
				]
			},
			{
				"id": "song-2",
				"name": "No Stream Available",
				"duration": 180,
				"artists": {"primary": [{"id": "a3", "name": "Third Artist"}]},
				"image": [],
				"downloadUrl": []
			}
		]
	}
}`

func TestSearchSongs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/songs", r.URL.Path)
		assert.Equal(t, "tycho", r.URL.Query().Get("query"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	tracks, err := c.SearchSongs(context.Background(), "tycho", 10)
	require.NoError(t, err)

	// The song without a stream URL is dropped.
	require.Len(t, tracks, 1)

	got := tracks[0]
	assert.Equal(t, "song-1", got.ID)
	assert.Equal(t, `Weightless & Free`, got.Title)
	assert.Equal(t, []string{"First Artist", "Second Artist"}, got.Artists)
	assert.Equal(t, "https://cdn.example.com/song-1-hi.mp4", got.StreamURL)
	assert.Equal(t, "https://img.example.com/large.jpg", got.ArtworkURL)
	assert.Equal(t, 212*time.Second, got.DurationHint)
}

func TestSearchSongsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	_, err := c.SearchSongs(context.Background(), "tycho", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSearchSongsDefaultLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"total":0,"results":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	tracks, err := c.SearchSongs(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, tracks)
}
