package docstore

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// HTTPStore fetches documents from <base>/<name>.json.
type HTTPStore struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
}

// NewHTTPStore creates a store rooted at base.
func NewHTTPStore(base string, opts ...Option) (*HTTPStore, error) {
	u, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", base, err)
	}
	s := &HTTPStore{
		base:    u,
		client:  http.DefaultClient,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Fetch implements Store.
func (s *HTTPStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid document name %q", ErrFetch, name)
	}
	// Path is unescaped; String escapes it once.
	target := s.base.ResolveReference(&url.URL{Path: fileName(name)})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetch, name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, name, err)
	}
	return body, nil
}
