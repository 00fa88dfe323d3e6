package docstore

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the HTTPStore.
type Option func(*HTTPStore)

// WithHTTPClient replaces the client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPStore) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout bounds every request. Zero keeps the client's own timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *HTTPStore) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}
