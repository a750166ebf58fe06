// Package result defines the data model produced by a bio page scan and
// the output formats it can be written as.
package result

// LinkResult is the outcome of probing a single outbound link. It is
// created once by the prober and never mutated afterwards; every failure
// mode is captured in its fields rather than surfaced as an error.
type LinkResult struct {
	OriginalURL    string `json:"originalUrl"`    // The URL as extracted from the page
	FinalURL       string `json:"finalUrl"`       // The URL the response was ultimately served from
	Status         int    `json:"status"`         // HTTP status code (0 on transport failure)
	StatusText     string `json:"statusText"`     // Reason phrase, or a failure description when Status is 0
	IsWorking      bool   `json:"isWorking"`      // Status in [200, 400)
	IsRedirect     bool   `json:"isRedirect"`     // FinalURL differs from OriginalURL (byte comparison)
	ResponseTimeMs int64  `json:"responseTimeMs"` // Wall-clock time for the probe
}

// ScanResult is the complete output of scanning one bio page.
// WorkingLinks counts working non-redirect links; Redirects counts working
// links whose final URL differs from the original, so
// WorkingLinks + Redirects + BrokenLinks == TotalLinks always holds.
type ScanResult struct {
	PageTitle    string       `json:"pageTitle,omitempty"`
	TotalLinks   int          `json:"totalLinks"`
	WorkingLinks int          `json:"workingLinks"`
	BrokenLinks  int          `json:"brokenLinks"`
	Redirects    int          `json:"redirects"`
	Links        []LinkResult `json:"links"`
}

// NewScanResult aggregates per-link results into a ScanResult, preserving
// the order of links as given.
func NewScanResult(links []LinkResult) *ScanResult {
	res := &ScanResult{
		TotalLinks: len(links),
		Links:      links,
	}
	if res.Links == nil {
		res.Links = []LinkResult{}
	}

	for _, link := range links {
		switch {
		case link.IsWorking && link.IsRedirect:
			res.Redirects++
		case link.IsWorking:
			res.WorkingLinks++
		default:
			res.BrokenLinks++
		}
	}
	return res
}

// WorkingNonRedirects returns the links that resolved directly with a
// working status, in scan order.
func (res *ScanResult) WorkingNonRedirects() []LinkResult {
	var out []LinkResult
	for _, link := range res.Links {
		if link.IsWorking && !link.IsRedirect {
			out = append(out, link)
		}
	}
	return out
}
