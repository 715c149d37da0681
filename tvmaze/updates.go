package tvmaze

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"slices"
)

// Update periods accepted by the /updates/shows endpoint.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// SupportedUpdatePeriods lists the valid lookback windows for GetShowUpdates.
var SupportedUpdatePeriods = []string{PeriodDay, PeriodWeek, PeriodMonth}

// GetShowUpdates retrieves the updates feed for the given lookback period
// and reconciles it into a map of show IDs to change timestamps (epoch
// seconds). Entries whose timestamp is not an integer are dropped.
//
// An unsupported period is a configuration error: no request is issued and
// nil is returned. A 404 from the feed means no updates and yields an empty
// non-nil map.
func (c *Client) GetShowUpdates(ctx context.Context, period string) (map[string]int64, error) {
	if !slices.Contains(SupportedUpdatePeriods, period) {
		c.logger.Error().Str("period", period).Strs("supported", SupportedUpdatePeriods).
			Msg("Unsupported update period")
		return nil, nil
	}

	c.logger.Info().Str("period", period).Msg("Fetching show updates")

	params := url.Values{}
	params.Set("since", period)

	payload, err := c.get(ctx, updatesPath, params)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		c.logger.Info().Str("period", period).
			Msg("Updates feed returned nothing, assuming no updates")
		return map[string]int64{}, nil
	}

	raw, ok := payload.(map[string]any)
	if !ok {
		c.logger.Error().Str("period", period).Str("type", fmt.Sprintf("%T", payload)).
			Msgf("Unexpected response format from %s", updatesPath)
		return nil, nil
	}

	updates := make(map[string]int64, len(raw))
	var dropped bool
	for showID, value := range raw {
		ts, ok := value.(float64)
		if !ok || ts != math.Trunc(ts) {
			dropped = true
			continue
		}
		updates[showID] = int64(ts)
	}

	if dropped {
		c.logger.Warn().Str("period", period).
			Msg("Some updates had non-integer timestamps and were ignored")
	}

	c.logger.Info().Int("count", len(updates)).Str("period", period).
		Msg("Obtained show updates")

	return updates, nil
}
