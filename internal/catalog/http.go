package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUserAgent = "catalogue/0.1"
	requestTimeout   = 10 * time.Second
	maxBodyBytes     = 16 << 20
)

// HTTPSource fetches the item list as JSON from a URL.
type HTTPSource struct {
	url       *url.URL
	http      *http.Client
	userAgent string
}

// NewHTTPSource builds a source for rawURL. A missing scheme defaults to http.
func NewHTTPSource(rawURL string) (*HTTPSource, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &HTTPSource{
		url: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Item, error) {
	if s == nil {
		return nil, fmt.Errorf("source is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("GET %s returned status %d", s.url.Redacted(), resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	items, err := decodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return items, nil
}

func (s *HTTPSource) String() string {
	return s.url.Redacted()
}

func parseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("source url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse source url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse source url %q: missing host", raw)
	}
	u.Fragment = ""
	return u, nil
}
