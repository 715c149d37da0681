package tvmaze

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout       time.Duration
	maxRetries    int
	backoffFactor float64
	httpClient    *http.Client
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithMaxRetries sets the maximum number of automatic retry attempts.
func WithMaxRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.maxRetries = retries
		}
	}
}

// WithBackoffFactor sets the base factor of the exponential retry backoff.
// The wait before retry n is backoffFactor * 2^(n-1) seconds.
func WithBackoffFactor(factor float64) Option {
	return func(o *clientOptions) {
		if factor >= 0 {
			o.backoffFactor = factor
		}
	}
}

// WithHTTPClient replaces the retry-instrumented HTTP client entirely.
// Mainly useful for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}
