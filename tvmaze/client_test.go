package tvmaze

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlValues(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "https://api.tvmaze.com",
			wantErr: false,
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "https://api.tvmaze.com/",
			wantErr: false,
		},
		{
			name:    "missing URL",
			baseURL: "",
			wantErr: true,
			errMsg:  "URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
			assert.Equal(t, "https://api.tvmaze.com", client.baseURL)
		})
	}
}

func TestNewClientLogsConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	_, err := NewClient("https://api.tvmaze.com", logger,
		WithMaxRetries(5), WithBackoffFactor(0.1))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "TVMaze client initialized")
	assert.Contains(t, out, `"retries":5`)
	assert.Contains(t, out, `"backoff":0.1`)
	assert.Contains(t, out, `"pool_maxsize":100`)
}

func TestClientOptions(t *testing.T) {
	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("https://api.tvmaze.com", zerolog.Nop(),
			WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("negative retries ignored", func(t *testing.T) {
		opts := &clientOptions{maxRetries: DefaultMaxRetries}
		WithMaxRetries(-1)(opts)
		assert.Equal(t, DefaultMaxRetries, opts.maxRetries)
	})

	t.Run("negative backoff ignored", func(t *testing.T) {
		opts := &clientOptions{backoffFactor: DefaultBackoffFactor}
		WithBackoffFactor(-0.5)(opts)
		assert.Equal(t, DefaultBackoffFactor, opts.backoffFactor)
	})
}

func TestGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test", r.URL.Path)
		assert.Equal(t, "value", r.URL.Query().Get("key"))
		w.Write([]byte(`{"data":"success"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	payload, err := client.get(context.Background(), "/test", urlValues("key", "value"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"data": "success"}, payload)
}

func TestGetNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var buf bytes.Buffer
	client, err := NewClient(server.URL, zerolog.New(&buf))
	require.NoError(t, err)

	payload, err := client.get(context.Background(), "/notfound", nil)
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.Contains(t, buf.String(), "404 Not Found")
	assert.NotContains(t, buf.String(), "no updates for the requested period")
}

func TestGetNotFoundUpdatesHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var buf bytes.Buffer
	client, err := NewClient(server.URL, zerolog.New(&buf))
	require.NoError(t, err)

	payload, err := client.get(context.Background(), "/updates/shows", urlValues("since", "day"))
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.Contains(t, buf.String(), "no updates for the requested period")
}

func TestGetRetriesServerErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var buf bytes.Buffer
	client, err := NewClient(server.URL, zerolog.New(&buf),
		WithMaxRetries(2), WithBackoffFactor(0))
	require.NoError(t, err)

	payload, err := client.get(context.Background(), "/error", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Nil(t, payload)

	// Initial attempt plus two retries.
	assert.Equal(t, int32(3), requests.Load())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("failed permanently")))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop(),
		WithMaxRetries(3), WithBackoffFactor(0))
	require.NoError(t, err)

	payload, err := client.get(context.Background(), "/bad", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Nil(t, payload)
	assert.Equal(t, int32(1), requests.Load())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.False(t, statusErr.IsServerError())
}

func TestGetConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL, zerolog.Nop(),
		WithMaxRetries(1), WithBackoffFactor(0))
	require.NoError(t, err)

	payload, err := client.get(context.Background(), "/timeout", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrDecode)
	assert.Nil(t, payload)
}

func TestGetInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	client, err := NewClient(server.URL, zerolog.New(&buf))
	require.NoError(t, err)

	payload, err := client.get(context.Background(), "/invalidjson", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Nil(t, payload)
	assert.Contains(t, buf.String(), "invalid json")
}

func TestGetTruncatesBodySnippet(t *testing.T) {
	long := bytes.Repeat([]byte("x"), 500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(long)
	}))
	defer server.Close()

	var buf bytes.Buffer
	client, err := NewClient(server.URL, zerolog.New(&buf))
	require.NoError(t, err)

	_, err = client.get(context.Background(), "/invalidjson", nil)
	require.ErrorIs(t, err, ErrDecode)

	assert.Contains(t, buf.String(), truncate(string(long), 100))
	assert.NotContains(t, buf.String(), string(long[:200]))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}

func TestStatusError(t *testing.T) {
	err := &StatusError{StatusCode: 503, URL: "https://api.tvmaze.com/shows"}
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "/shows")
	assert.True(t, err.IsServerError())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestExponentialBackoff(t *testing.T) {
	backoff := exponentialBackoff(1.0)
	maxWait := 5 * time.Minute

	// factor * 2^(attempt-1), attempt starting at 0
	assert.Equal(t, 500*time.Millisecond, backoff(0, maxWait, 0, nil))
	assert.Equal(t, time.Second, backoff(0, maxWait, 1, nil))
	assert.Equal(t, 2*time.Second, backoff(0, maxWait, 2, nil))

	// Clamped to the maximum wait.
	assert.Equal(t, maxWait, backoff(0, maxWait, 30, nil))
}

func TestCheckRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries connection errors", func(t *testing.T) {
		retry, err := checkRetry(ctx, nil, assert.AnError)
		require.NoError(t, err)
		assert.True(t, retry)
	})

	t.Run("retries eligible statuses on GET", func(t *testing.T) {
		for _, code := range []int{429, 500, 502, 503, 504} {
			resp := &http.Response{
				StatusCode: code,
				Request:    &http.Request{Method: http.MethodGet},
			}
			retry, err := checkRetry(ctx, resp, nil)
			require.NoError(t, err)
			assert.True(t, retry, "status %d", code)
		}
	})

	t.Run("does not retry other statuses", func(t *testing.T) {
		for _, code := range []int{200, 400, 404, 501} {
			resp := &http.Response{
				StatusCode: code,
				Request:    &http.Request{Method: http.MethodGet},
			}
			retry, err := checkRetry(ctx, resp, nil)
			require.NoError(t, err)
			assert.False(t, retry, "status %d", code)
		}
	})

	t.Run("does not retry ineligible methods", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusInternalServerError,
			Request:    &http.Request{Method: http.MethodPost},
		}
		retry, err := checkRetry(ctx, resp, nil)
		require.NoError(t, err)
		assert.False(t, retry)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		retry, err := checkRetry(cancelled, nil, assert.AnError)
		require.Error(t, err)
		assert.False(t, retry)
	})
}
