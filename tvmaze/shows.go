package tvmaze

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetShows retrieves one page of the show index from /shows.
//
// Returns nil when the page does not exist (404) or when the response is
// not the expected JSON array.
func (c *Client) GetShows(ctx context.Context, page int) ([]any, error) {
	c.logger.Info().Int("page", page).Msg("Fetching shows page")

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	payload, err := c.get(ctx, "/shows", params)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	shows, ok := payload.([]any)
	if !ok {
		c.logger.Error().Int("page", page).Str("type", fmt.Sprintf("%T", payload)).
			Msg("Unexpected non-list response for /shows")
		return nil, nil
	}

	return shows, nil
}

// GetShowDetails retrieves the details object for a show from /shows/{id}.
//
// Returns nil when the show does not exist (404) or when the response is
// not the expected JSON object.
func (c *Client) GetShowDetails(ctx context.Context, showID int) (map[string]any, error) {
	c.logger.Info().Int("show_id", showID).Msg("Fetching details for show")

	path := fmt.Sprintf("/shows/%d", showID)
	payload, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	details, ok := payload.(map[string]any)
	if !ok {
		c.logger.Error().Int("show_id", showID).Str("type", fmt.Sprintf("%T", payload)).
			Msgf("Unexpected non-dict response for %s", path)
		return nil, nil
	}

	return details, nil
}

// GetSeasons retrieves the seasons of a show from /shows/{id}/seasons.
//
// Returns nil when the show does not exist (404) or when the response is
// not the expected JSON array.
func (c *Client) GetSeasons(ctx context.Context, showID int) ([]any, error) {
	c.logger.Info().Int("show_id", showID).Msg("Fetching seasons for show")

	path := fmt.Sprintf("/shows/%d/seasons", showID)
	payload, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	seasons, ok := payload.([]any)
	if !ok {
		c.logger.Error().Int("show_id", showID).Str("type", fmt.Sprintf("%T", payload)).
			Msgf("Unexpected non-list response for %s", path)
		return nil, nil
	}

	return seasons, nil
}

// GetEpisodes retrieves the episodes of a show from /shows/{id}/episodes.
//
// Returns nil when the show does not exist (404) or when the response is
// not the expected JSON array.
func (c *Client) GetEpisodes(ctx context.Context, showID int) ([]any, error) {
	c.logger.Info().Int("show_id", showID).Msg("Fetching episodes for show")

	path := fmt.Sprintf("/shows/%d/episodes", showID)
	payload, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	episodes, ok := payload.([]any)
	if !ok {
		c.logger.Error().Int("show_id", showID).Str("type", fmt.Sprintf("%T", payload)).
			Msgf("Unexpected non-list response for %s", path)
		return nil, nil
	}

	return episodes, nil
}
