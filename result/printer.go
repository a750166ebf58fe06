package result

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	headlineColor = color.New(color.Bold)
	workingColor  = color.New(color.FgGreen)
	redirectColor = color.New(color.FgYellow)
	brokenColor   = color.New(color.FgRed)
	dimColor      = color.New(color.Faint)
)

// PrintSummary writes a human-readable scan summary to w: one line per link
// followed by aggregate counts.
func PrintSummary(w io.Writer, res *ScanResult) {
	if res.PageTitle != "" {
		_, _ = headlineColor.Fprintf(w, "%s\n", res.PageTitle)
	}

	for _, link := range res.Links {
		switch {
		case !link.IsWorking:
			_, _ = brokenColor.Fprintf(w, "  BROKEN   %s", link.OriginalURL)
		case link.IsRedirect:
			_, _ = redirectColor.Fprintf(w, "  REDIRECT %s -> %s", link.OriginalURL, link.FinalURL)
		default:
			_, _ = workingColor.Fprintf(w, "  OK       %s", link.OriginalURL)
		}
		if link.Status > 0 {
			_, _ = dimColor.Fprintf(w, "  [%d %s, %dms]", link.Status, link.StatusText, link.ResponseTimeMs)
		} else {
			_, _ = dimColor.Fprintf(w, "  [%s]", link.StatusText)
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "%d links: %d working, %d redirects, %d broken\n",
		res.TotalLinks, res.WorkingLinks, res.Redirects, res.BrokenLinks)
}
