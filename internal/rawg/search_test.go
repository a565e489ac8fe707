package rawg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gamescout/internal/errors"
)

const searchPayload = `{
	"results": [
		{
			"id": 326243,
			"name": "Elden Ring",
			"released": "2022-02-25",
			"rating": 4.41,
			"metacritic": 95,
			"background_image": "https://media.rawg.io/media/games/b29/elden.jpg",
			"platforms": [
				{"platform": {"name": "PC"}},
				{"platform": {"name": "PlayStation 5"}}
			],
			"genres": [{"name": "Action"}, {"name": "RPG"}],
			"developers": [{"name": "FromSoftware"}]
		},
		{
			"id": 1,
			"name": "Elden Ring: Shadow of the Erdtree",
			"released": "2024-06-21",
			"rating": 4.5,
			"metacritic": null,
			"background_image": "",
			"platforms": [],
			"genres": [],
			"developers": []
		}
	]
}`

func TestSearchGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "Elden Ring", r.URL.Query().Get("search"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithoutCache())

	resp, err := client.SearchGames(context.Background(), "Elden Ring")
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.False(t, resp.FromCache)

	top := resp.Results[0]
	assert.Equal(t, 326243, top.ID)
	assert.Equal(t, "Elden Ring", top.Name)
	assert.Equal(t, "2022-02-25", top.Released)
	assert.Equal(t, "PC, PlayStation 5", top.PlatformList())
	assert.Equal(t, "Action, RPG", top.GenreList())
	assert.Equal(t, "FromSoftware", top.DeveloperList())
	require.NotNil(t, top.Metacritic)
	assert.Equal(t, 95, *top.Metacritic)

	// Missing metacritic decodes as nil, not zero.
	assert.Nil(t, resp.Results[1].Metacritic)
}

func TestSearchGamesEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithoutCache())

	resp, err := client.SearchGames(context.Background(), "definitely not a game")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearchGamesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "key invalid", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL), WithoutCache(), WithRetryAttempts(1))

	_, err := client.SearchGames(context.Background(), "Hades")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
}

func TestSearchGamesRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithoutCache(), WithRetryAttempts(1))

	_, err := client.SearchGames(context.Background(), "Hades")
	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimitError(err))
}
