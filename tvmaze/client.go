package tvmaze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Default client configuration.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxRetries    = 3
	DefaultBackoffFactor = 0.5

	// poolMaxSize is the size of the shared connection pool.
	poolMaxSize = 100

	updatesPath = "/updates/shows"
)

// retryStatuses are the HTTP status codes eligible for automatic retry.
var retryStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// retryMethods are the HTTP methods eligible for automatic retry.
var retryMethods = map[string]bool{
	http.MethodHead:    true,
	http.MethodGet:     true,
	http.MethodOptions: true,
}

// Client wraps the TVMaze API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TVMaze client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("tvmaze URL is required")
	}

	// Ensure base URL ends without slash
	baseURL = strings.TrimRight(baseURL, "/")

	options := &clientOptions{
		timeout:       DefaultTimeout,
		maxRetries:    DefaultMaxRetries,
		backoffFactor: DefaultBackoffFactor,
	}
	for _, opt := range opts {
		opt(options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = newRetryingClient(options)
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}

	logger.Info().
		Str("base_url", baseURL).
		Int("retries", options.maxRetries).
		Float64("backoff", options.backoffFactor).
		Int("pool_maxsize", poolMaxSize).
		Msg("TVMaze client initialized")

	return client, nil
}

// newRetryingClient builds the pooled, retry-instrumented HTTP client.
func newRetryingClient(options *clientOptions) *http.Client {
	transport := cleanhttp.DefaultPooledTransport()
	transport.MaxIdleConns = poolMaxSize
	transport.MaxIdleConnsPerHost = poolMaxSize

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = options.maxRetries
	rc.RetryWaitMin = 0
	rc.RetryWaitMax = 5 * time.Minute
	rc.HTTPClient = &http.Client{
		Timeout:   options.timeout,
		Transport: transport,
	}
	rc.CheckRetry = checkRetry
	rc.Backoff = exponentialBackoff(options.backoffFactor)

	return rc.StandardClient()
}

// checkRetry retries transient failures only: connection-level errors, and
// the retryable status codes on the retryable methods. Anything else fails
// immediately.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp != nil && retryStatuses[resp.StatusCode] {
		if resp.Request == nil || retryMethods[resp.Request.Method] {
			return true, nil
		}
	}
	return false, nil
}

// exponentialBackoff waits factor * 2^(attempt-1) seconds before retry
// attempt n, with attempt numbering starting at 0.
func exponentialBackoff(factor float64) retryablehttp.Backoff {
	return func(_, maxWait time.Duration, attemptNum int, _ *http.Response) time.Duration {
		wait := time.Duration(factor * math.Pow(2, float64(attemptNum-1)) * float64(time.Second))
		if wait > maxWait {
			wait = maxWait
		}
		return wait
	}
}

// get issues one GET through the retrying client and decodes the body.
//
// A 404 is not a failure: it returns (nil, nil) so callers can treat the
// resource as absent. Any other error surfaces as ErrTransport or ErrDecode
// after being logged exactly once.
func (c *Client) get(ctx context.Context, path string, params url.Values) (any, error) {
	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	c.logger.Debug().
		Str("method", http.MethodGet).
		Str("url", requestURL).
		Str("params", params.Encode()).
		Msg("Making API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.logger.Error().Err(err).Str("url", requestURL).Msg("Failed to build API request")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", requestURL).
			Msg("API request failed permanently after retries")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		evt := c.logger.Info().Str("url", requestURL).Str("params", params.Encode())
		if path == updatesPath {
			evt.Msg("API returned 404 Not Found; this might indicate no updates for the requested period")
		} else {
			evt.Msg("API returned 404 Not Found")
		}
		return nil, nil
	}

	if resp.StatusCode >= http.StatusBadRequest {
		statusErr := &StatusError{StatusCode: resp.StatusCode, URL: requestURL}
		c.logger.Error().Int("status", resp.StatusCode).Str("url", requestURL).
			Msg("API request failed permanently after retries")
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error().Err(err).Str("url", requestURL).Msg("Failed to read API response body")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error().Err(err).Str("url", requestURL).
			Str("body", truncate(string(body), 100)).
			Msg("Failed to decode JSON response")
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return payload, nil
}

// truncate shortens s to at most n characters for log output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
