package tvmaze

import (
	"context"
)

// API defines the interface for TVMaze catalog operations
type API interface {
	// GetShows retrieves one page of the show index
	GetShows(ctx context.Context, page int) ([]any, error)

	// GetShowDetails retrieves the details object for a single show
	GetShowDetails(ctx context.Context, showID int) (map[string]any, error)

	// GetSeasons retrieves the seasons of a show
	GetSeasons(ctx context.Context, showID int) ([]any, error)

	// GetEpisodes retrieves the episodes of a show
	GetEpisodes(ctx context.Context, showID int) ([]any, error)

	// GetShowUpdates retrieves the updates feed for a lookback period
	GetShowUpdates(ctx context.Context, period string) (map[string]int64, error)
}
