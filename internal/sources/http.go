// Package sources implements replenish.Source against public trivia APIs
// and language models.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultHTTPTimeout bounds a single API call when the caller's context has
// no deadline of its own.
const DefaultHTTPTimeout = 15 * time.Second

// maximum accepted response body
const maxBody = 1 << 20

// Option configures the HTTP-backed sources.
type Option func(*httpClient)

// WithHTTPClient replaces the client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) { h.client = c }
}

// WithBaseURL points the source at a different API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(h *httpClient) { h.baseURL = u }
}

type httpClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, opts []Option) httpClient {
	h := httpClient{
		client:  &http.Client{Timeout: DefaultHTTPTimeout},
		baseURL: baseURL,
	}
	for _, o := range opts {
		o(&h)
	}
	return h
}

// getJSON fetches url and decodes the body into out.
func (h httpClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
