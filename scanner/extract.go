package scanner

import (
	"io"
	"strings"

	"github.com/thehouseofcodeinjava/clearout.bio.bolt/urlutil"
	"golang.org/x/net/html"
)

// ExtractLinks parses HTML from the given reader and extracts all anchor tag
// hrefs in document order. Each href is normalized against the base page URL;
// entries that are not valid http(s) URLs, or that carry a mailto: or tel:
// scheme, are discarded. The returned list is deduplicated by exact string
// equality, keeping the first occurrence of each URL.
//
// Malformed or partial HTML is tolerated: whatever tokenizes is extracted.
func ExtractLinks(body io.Reader, base string) []string {
	tokenizer := html.NewTokenizer(body)
	seen := make(map[string]bool)
	var links []string

	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			// End of document or unrecoverable parse error.
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key != "href" {
					continue
				}

				normalized := urlutil.Normalize(attr.Val, base)

				if strings.HasPrefix(normalized, "mailto:") || strings.HasPrefix(normalized, "tel:") {
					continue
				}
				if !urlutil.IsValid(normalized) || !urlutil.IsHTTPScheme(normalized) {
					continue
				}

				if !seen[normalized] {
					seen[normalized] = true
					links = append(links, normalized)
				}
			}
		}
	}
}
