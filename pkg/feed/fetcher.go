package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/topnews/pkg/domain"
)

// default fetcher settings
const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; topnews/1.0)"
)

// HTTPFetcher fetches RSS/Atom feeds via HTTP and parses them with gofeed
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// FetcherParams configures HTTPFetcher
type FetcherParams struct {
	Timeout   time.Duration // whole fetch, including body read and parsing
	UserAgent string
}

// NewHTTPFetcher creates a new feed fetcher
func NewHTTPFetcher(params FetcherParams) *HTTPFetcher {
	if params.Timeout <= 0 {
		params.Timeout = DefaultTimeout
	}
	if params.UserAgent == "" {
		params.UserAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout:   params.Timeout,
		userAgent: params.UserAgent,
	}
}

// Fetch retrieves and parses a feed from the given URL. Any failure, including
// timeout, is returned as *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) ([]domain.RawEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.fetch(ctx, feedURL)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: fmt.Errorf("fetch feed: %w", err)}
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: fmt.Errorf("parse feed: %w", err)}
	}

	entries := make([]domain.RawEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, itemEntry{item: item})
	}
	return entries, nil
}

// fetch retrieves content from a URL
func (f *HTTPFetcher) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
