package result

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
)

// WriteJSON writes the scan result as formatted JSON to the writer.
func WriteJSON(w io.Writer, res *ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// WriteCSV writes all probed links as CSV to the writer.
// Always includes a header row, even if no links were scanned.
// Column order: original_url, final_url, status, status_text, working, redirect, response_time_ms
func WriteCSV(w io.Writer, links []LinkResult) error {
	cw := csv.NewWriter(w)

	header := []string{"original_url", "final_url", "status", "status_text", "working", "redirect", "response_time_ms"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, link := range links {
		record := []string{
			link.OriginalURL,
			link.FinalURL,
			statusStr(link.Status),
			link.StatusText,
			strconv.FormatBool(link.IsWorking),
			strconv.FormatBool(link.IsRedirect),
			strconv.FormatInt(link.ResponseTimeMs, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record for %s: %w", link.OriginalURL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

// snippetTmpl renders working non-redirect links as a static HTML list of
// their final URLs, suitable for pasting into another page.
var snippetTmpl = template.Must(template.New("snippet").Parse(
	`<ul class="clearout-links">
{{- range .}}
  <li><a href="{{.FinalURL}}">{{.FinalURL}}</a></li>
{{- end}}
</ul>
`))

// WriteHTML writes the working, non-redirect subset of the scan's links as
// a static HTML snippet listing each link's final URL.
func WriteHTML(w io.Writer, res *ScanResult) error {
	if err := snippetTmpl.Execute(w, res.WorkingNonRedirects()); err != nil {
		return fmt.Errorf("write html output: %w", err)
	}
	return nil
}

// statusStr converts an HTTP status code to a string.
// Returns empty string for 0 (no HTTP status).
func statusStr(code int) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code)
}
