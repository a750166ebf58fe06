// Package scanner implements the bio page link scanning pipeline: fetching
// a page, extracting and normalizing its outbound links, probing each with
// bounded concurrency, and aggregating the classified results.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thehouseofcodeinjava/clearout.bio.bolt/result"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/urlutil"
)

// ErrInvalidURL is returned by Scan when the page URL is not a valid
// http(s) URL. The caller can correct the input and retry.
var ErrInvalidURL = errors.New("invalid URL")

// maxPageBytes caps how much of the bio page is read. Bio pages are small;
// the cap guards against scanning a misconfigured URL serving a huge body.
const maxPageBytes = 10 << 20

// FetchError describes a failure to fetch the bio page itself: a transport
// error, the fetch's own timeout, or a non-success HTTP status.
type FetchError struct {
	URL     string
	Status  int    // Upstream HTTP status, 0 on transport failure
	Reason  string // Upstream reason phrase or failure description
	Timeout bool   // The fetch was aborted by its own timeout
	Err     error
}

func (e *FetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("fetch %s: %d %s", e.URL, e.Status, e.Reason)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Scanner runs bio page scans. A single Scanner is safe for concurrent use;
// every Scan builds its own HTTP clients and rate limiter so scans share no
// connection pool or limiter state.
type Scanner struct {
	cfg        Config
	robots     *RobotsChecker
	progressCh chan<- ScanEvent
}

// New creates a Scanner with the given configuration.
// The progressCh parameter is optional; pass nil to disable progress events.
func New(cfg Config, progressCh chan<- ScanEvent) *Scanner {
	return &Scanner{
		cfg:        cfg.withDefaults(),
		robots:     NewRobotsChecker(&http.Client{Timeout: 5 * time.Second}),
		progressCh: progressCh,
	}
}

// Scan fetches pageURL, extracts its outbound links, probes them all, and
// returns the aggregated result. A page with zero extractable links is a
// successful scan with all-zero counts. Scan fails only when the page URL
// is invalid (ErrInvalidURL) or the page itself cannot be fetched
// (*FetchError); per-link failures are absorbed into the result.
func (s *Scanner) Scan(ctx context.Context, pageURL string) (*result.ScanResult, error) {
	if !urlutil.IsValid(pageURL) || !urlutil.IsHTTPScheme(pageURL) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, pageURL)
	}

	if s.cfg.RespectRobots {
		// Fail-open: only an explicit disallow blocks the scan.
		if allowed, _ := s.robots.Allowed(ctx, pageURL, s.cfg.UserAgent); !allowed {
			return nil, &FetchError{URL: pageURL, Reason: "disallowed by robots.txt"}
		}
	}

	body, err := s.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	links := ExtractLinks(bytes.NewReader(body), pageURL)

	var probed []result.LinkResult
	if len(links) > 0 {
		probed = s.ProbeAll(ctx, links)
	}

	res := result.NewScanResult(probed)
	res.PageTitle = PageTitle(bytes.NewReader(body))
	return res, nil
}

// fetchPage retrieves the bio page HTML with the configured timeout and
// User-Agent. Responses outside 2xx are fetch failures: the page itself
// must be readable before its links can be judged.
func (s *Scanner) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.PageFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Reason: err.Error(), Err: err}
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, &FetchError{
			URL:     pageURL,
			Reason:  result.DescribeFailure(err),
			Timeout: result.ClassifyFailure(err) == result.CategoryTimeout,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: pageURL, Status: resp.StatusCode, Reason: reasonPhrase(resp)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &FetchError{
			URL:     pageURL,
			Reason:  result.DescribeFailure(err),
			Timeout: result.ClassifyFailure(err) == result.CategoryTimeout,
			Err:     err,
		}
	}
	return body, nil
}
