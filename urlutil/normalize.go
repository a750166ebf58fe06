// Package urlutil provides URL normalization and validity checks for the
// link scanning pipeline.
package urlutil

import (
	"net/url"
	"strings"
)

// Normalize resolves a raw href against the page URL it was found on and
// returns an absolute URL string. Resolution rules, in order:
//   - hrefs that already carry an http:// or https:// scheme pass through
//     unchanged
//   - protocol-relative hrefs ("//host/path") get an https scheme
//   - root-relative hrefs ("/path") resolve against the base URL's origin
//   - anything else is treated as a relative reference and resolved against
//     the base URL; with no usable base, "https://" is prepended as a last
//     resort
//
// Normalize never fails: when the href cannot be resolved it is returned
// unchanged, and the caller rejects it via IsValid.
func Normalize(href, base string) string {
	switch {
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	}

	refURL, err := url.Parse(href)
	if err != nil {
		return href
	}

	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		// No usable base to resolve against.
		return "https://" + href
	}

	if strings.HasPrefix(href, "/") {
		return baseURL.Scheme + "://" + baseURL.Host + href
	}

	return baseURL.ResolveReference(refURL).String()
}
