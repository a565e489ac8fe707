package rawg

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailsPayload = `{
	"id": 3498,
	"name": "Grand Theft Auto V",
	"description_raw": "Rockstar Games went bigger.",
	"released": "2013-09-17",
	"rating": 4.47,
	"metacritic": 92,
	"background_image": "https://media.rawg.io/media/games/456/gta.jpg",
	"website": "http://www.rockstargames.com/V/",
	"esrb_rating": {"name": "Mature"},
	"platforms": [{"platform": {"name": "PC"}}, {"platform": {"name": "Xbox Series S/X"}}],
	"genres": [{"name": "Action"}],
	"developers": [{"name": "Rockstar North"}],
	"publishers": [{"name": "Rockstar Games"}]
}`

func TestGetGameDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/3498", r.URL.Path)
		_, _ = w.Write([]byte(detailsPayload))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithoutCache())

	details, err := client.GetGameDetails(context.Background(), 3498)
	require.NoError(t, err)

	assert.Equal(t, "Grand Theft Auto V", details.Name)
	assert.Equal(t, "Rockstar Games went bigger.", details.DescriptionRaw)
	assert.Equal(t, "Mature", details.ESRBRating)
	assert.Equal(t, []string{"PC", "Xbox Series S/X"}, details.Platforms)
	assert.Equal(t, []string{"Rockstar Games"}, details.Publishers)
	require.NotNil(t, details.Metacritic)
	assert.Equal(t, 92, *details.Metacritic)
}

func TestGetGameDetailsNoESRB(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1, "name": "Indie Gem", "esrb_rating": null}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithoutCache())

	details, err := client.GetGameDetails(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, details.ESRBRating)
}

func TestGetScreenshotsCapsAtSix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/3498/screenshots", r.URL.Path)
		payload := `{"results": [`
		for i := 0; i < 10; i++ {
			if i > 0 {
				payload += ","
			}
			payload += fmt.Sprintf(`{"image": "https://media.rawg.io/s/%d.jpg"}`, i)
		}
		payload += `]}`
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithoutCache())

	shots, err := client.GetScreenshots(context.Background(), 3498)
	require.NoError(t, err)
	assert.Len(t, shots, 6)
	assert.Equal(t, "https://media.rawg.io/s/0.jpg", shots[0])
}
