package scanner

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/thehouseofcodeinjava/clearout.bio.bolt/result"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ProbeAll probes every URL and returns one LinkResult per input, in input
// order. URLs are processed in consecutive chunks of at most
// cfg.Concurrency; within a chunk all probes run concurrently and the next
// chunk starts only once the chunk has fully resolved, bounding peak
// outbound connections. A slow link therefore delays the following chunk,
// which is accepted in exchange for resource predictability.
//
// Results are written by originating position, never by completion order.
// No individual probe failure aborts the batch, and cancelling one probe's
// timeout never affects its siblings.
func (s *Scanner) ProbeAll(ctx context.Context, urls []string) []result.LinkResult {
	results := make([]result.LinkResult, len(urls))

	// Per-call client and limiter: scans share nothing with each other.
	client := &http.Client{}
	limiter := newLimiter(s.cfg.RateLimit)

	var checked atomic.Int64

	for chunkStart := 0; chunkStart < len(urls); chunkStart += s.cfg.Concurrency {
		chunkEnd := min(chunkStart+s.cfg.Concurrency, len(urls))

		var group errgroup.Group
		for i := chunkStart; i < chunkEnd; i++ {
			i := i
			group.Go(func() error {
				if err := limiter.Wait(ctx); err != nil {
					// Scan cancelled while queued: record the failure as
					// data, like any other transport error.
					results[i] = result.LinkResult{
						OriginalURL: urls[i],
						FinalURL:    urls[i],
						StatusText:  result.DescribeFailure(err),
					}
				} else {
					results[i] = Probe(ctx, client, urls[i], s.cfg)
				}
				s.emit(ScanEvent{
					URL:     urls[i],
					Status:  results[i].Status,
					Working: results[i].IsWorking,
					Checked: int(checked.Add(1)),
					Total:   len(urls),
				})
				return nil
			})
		}
		_ = group.Wait()
	}

	return results
}

// newLimiter builds the per-scan outbound rate limiter. A non-positive RPS
// disables limiting.
func newLimiter(rps int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), rps)
}
