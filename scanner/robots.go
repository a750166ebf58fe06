package scanner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// cachedRobots stores parsed robots.txt data with fetch timestamp.
// A nil data field means allow-all (missing file, server error, or
// unparseable rules).
type cachedRobots struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
}

// RobotsChecker fetches and caches robots.txt rules per host. It gates only
// the bio page fetch, never the per-link probes, and fails open: any error
// while fetching or parsing rules allows the scan.
type RobotsChecker struct {
	client   *http.Client
	cache    sync.Map // host string -> *cachedRobots
	cacheTTL time.Duration
}

// NewRobotsChecker creates a RobotsChecker with the given HTTP client.
func NewRobotsChecker(client *http.Client) *RobotsChecker {
	return &RobotsChecker{
		client:   client,
		cacheTTL: time.Hour,
	}
}

// Allowed reports whether the given URL may be fetched by the user agent.
// Errors result in allow-all behavior and are returned alongside true so
// callers may surface them.
func (r *RobotsChecker) Allowed(ctx context.Context, rawURL, userAgent string) (bool, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return true, fmt.Errorf("parse URL: %w", err)
	}

	host := parsedURL.Host
	if host == "" {
		return true, nil
	}

	if cached, ok := r.cache.Load(host); ok {
		entry := cached.(*cachedRobots)
		if time.Since(entry.fetchedAt) < r.cacheTTL {
			if entry.data == nil {
				return true, nil
			}
			return entry.data.TestAgent(parsedURL.Path, userAgent), nil
		}
		r.cache.Delete(host)
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsedURL.Scheme, host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		r.cacheNilEntry(host)
		return true, fmt.Errorf("build robots.txt request for host %s: %w", host, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		r.cacheNilEntry(host)
		return true, fmt.Errorf("fetch robots.txt for host %s: %w", host, err)
	}
	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		r.cacheNilEntry(host)
		return true, fmt.Errorf("read robots.txt for host %s: %w", host, readErr)
	}

	// Missing file or server error means allow-all.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode >= 500 {
		r.cacheNilEntry(host)
		return true, nil
	}

	robots, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		r.cacheNilEntry(host)
		return true, fmt.Errorf("parse robots.txt for host %s: %w", host, err)
	}

	r.cache.Store(host, &cachedRobots{data: robots, fetchedAt: time.Now()})
	return robots.TestAgent(parsedURL.Path, userAgent), nil
}

// cacheNilEntry stores an allow-all entry for the host.
func (r *RobotsChecker) cacheNilEntry(host string) {
	r.cache.Store(host, &cachedRobots{fetchedAt: time.Now()})
}
