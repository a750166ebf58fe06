package scanner

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/thehouseofcodeinjava/clearout.bio.bolt/result"
)

// Probe issues a lightweight health check against a single URL and captures
// the outcome as a LinkResult. It never fails: transport errors are recorded
// with Status 0 and a human-readable StatusText.
//
// The request is a HEAD with redirects followed; servers answering
// 405 Method Not Allowed are retried with a GET. Redirect detection compares
// the final URL against the original byte for byte, so trailing-slash or
// case differences introduced by the server count as redirects.
func Probe(ctx context.Context, client *http.Client, rawURL string, cfg Config) result.LinkResult {
	res := result.LinkResult{
		OriginalURL: rawURL,
		FinalURL:    rawURL,
	}

	reqCtx, cancel := context.WithTimeout(ctx, cfg.ProbeTimeout)
	defer cancel()

	start := time.Now()
	resp, err := doProbe(reqCtx, client, rawURL, cfg.UserAgent)
	res.ResponseTimeMs = time.Since(start).Milliseconds()

	if err != nil {
		res.StatusText = result.DescribeFailure(err)
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	res.StatusText = reasonPhrase(resp)
	if resp.Request != nil && resp.Request.URL != nil {
		res.FinalURL = resp.Request.URL.String()
	}
	res.IsRedirect = res.FinalURL != rawURL
	res.IsWorking = resp.StatusCode >= 200 && resp.StatusCode < 400

	return res
}

// doProbe performs the HEAD request, falling back to GET when the server
// rejects HEAD with 405.
func doProbe(ctx context.Context, client *http.Client, rawURL, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build probe request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		return resp, nil
	}
	_ = resp.Body.Close()

	getReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build probe fallback request: %w", err)
	}
	getReq.Header.Set("User-Agent", userAgent)

	return client.Do(getReq)
}

// reasonPhrase returns the response's own reason phrase, falling back to the
// standard status text table when the server sent an empty one.
func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(resp.StatusCode)
	}
	return phrase
}
