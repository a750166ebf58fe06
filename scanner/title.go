package scanner

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageTitle extracts the document's <title> text, collapsed to a single
// trimmed line. Returns "" for untitled or unparseable documents.
func PageTitle(body io.Reader) string {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
