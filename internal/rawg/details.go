package rawg

import (
	"context"
	"fmt"
	"strconv"

	"gamescout/internal/cache"
)

const maxScreenshots = 6

// GetGameDetails fetches the extended record for a game by its RAWG id.
func (c *Client) GetGameDetails(ctx context.Context, gameID int) (*Details, error) {
	fetch := func() (*Details, error) {
		return c.getGameDetails(ctx, gameID)
	}

	if !c.useCache {
		return fetch()
	}

	details, _, err := cache.GetOrFetch("rawg_details_cache", strconv.Itoa(gameID), fetch)
	return details, err
}

func (c *Client) getGameDetails(ctx context.Context, gameID int) (*Details, error) {
	var response struct {
		ID              int           `json:"id"`
		Name            string        `json:"name"`
		DescriptionRaw  string        `json:"description_raw"`
		Released        string        `json:"released"`
		Rating          float64       `json:"rating"`
		Metacritic      *int          `json:"metacritic"`
		BackgroundImage string        `json:"background_image"`
		Website         string        `json:"website"`
		ESRBRating      *namedRef     `json:"esrb_rating"`
		Platforms       []platformRef `json:"platforms"`
		Genres          []namedRef    `json:"genres"`
		Developers      []namedRef    `json:"developers"`
		Publishers      []namedRef    `json:"publishers"`
	}

	endpoint := c.endpoint(fmt.Sprintf("/games/%d", gameID), nil)
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	details := &Details{
		ID:              response.ID,
		Name:            response.Name,
		DescriptionRaw:  response.DescriptionRaw,
		Released:        response.Released,
		Rating:          response.Rating,
		Metacritic:      response.Metacritic,
		BackgroundImage: response.BackgroundImage,
		Website:         response.Website,
		Platforms:       platformNames(response.Platforms),
		Genres:          refNames(response.Genres),
		Developers:      refNames(response.Developers),
		Publishers:      refNames(response.Publishers),
	}
	if response.ESRBRating != nil {
		details.ESRBRating = response.ESRBRating.Name
	}

	return details, nil
}

// GetScreenshots fetches up to six screenshot URLs for a game.
func (c *Client) GetScreenshots(ctx context.Context, gameID int) ([]string, error) {
	var response struct {
		Results []struct {
			Image string `json:"image"`
		} `json:"results"`
	}

	endpoint := c.endpoint(fmt.Sprintf("/games/%d/screenshots", gameID), nil)
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	screenshots := make([]string, 0, maxScreenshots)
	for _, item := range response.Results {
		if len(screenshots) >= maxScreenshots {
			break
		}
		screenshots = append(screenshots, item.Image)
	}

	return screenshots, nil
}
