// Package tvmaze provides a client for the TVMaze show catalog API.
//
// TVMaze is a public REST service exposing TV show metadata: the show index,
// per-show details, seasons, episodes, and an incremental updates feed. This
// package implements a resilient, idiomatic Go client for those endpoints.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: connection pooling, automatic retries with exponential
//     backoff, and a single request/decode path shared by every endpoint
//   - Endpoint methods: one per resource, each enforcing the JSON shape
//     (array vs. object) the endpoint is documented to return
//   - Update reconciliation: validation and repair of the updates feed
//     into a map of show IDs to change timestamps
//   - Errors: sentinel errors separating transport failures from bad payloads
//
// # Usage
//
// Create a client with the API base URL and a logger:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := tvmaze.NewClient(
//		"https://api.tvmaze.com",
//		logger,
//		tvmaze.WithMaxRetries(3),
//		tvmaze.WithBackoffFactor(0.5),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	shows, err := client.GetShows(ctx, 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// Failures split into soft and hard:
//
//   - HTTP 404 and shape mismatches are soft: methods return a nil result
//     and a nil error, so callers can use a simple nil check
//   - Network failures, non-404 HTTP errors surviving the retry policy,
//     and undecodable bodies are hard: methods return an error wrapping
//     ErrTransport or ErrDecode
//
// Distinguish them with errors.Is:
//
//	shows, err := client.GetShows(ctx, page)
//	if errors.Is(err, tvmaze.ErrTransport) {
//		// the service is unreachable or erroring
//	}
package tvmaze
