package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/result"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	workingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	redirectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	brokenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderSummary produces a Lip Gloss styled summary of scan results.
func RenderSummary(res *result.ScanResult) string {
	if res == nil {
		return errorStyle.Render("No results available.")
	}

	var builder strings.Builder

	if res.PageTitle != "" {
		builder.WriteString(titleStyle.Render(res.PageTitle))
		builder.WriteString("\n")
	}

	if res.TotalLinks == 0 {
		builder.WriteString(dimStyle.Render("No links found on this page."))
		builder.WriteString("\n")
		return builder.String()
	}

	rows := make([][]string, 0, len(res.Links))
	for _, link := range res.Links {
		status := link.StatusText
		if link.Status > 0 {
			status = fmt.Sprintf("%d %s", link.Status, link.StatusText)
		}
		rows = append(rows, []string{
			classLabel(link),
			link.OriginalURL,
			status,
			fmt.Sprintf("%dms", link.ResponseTimeMs),
		})
	}

	linkTable := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("", "URL", "Status", "Time").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 && row >= 0 && row < len(res.Links) {
				switch {
				case !res.Links[row].IsWorking:
					return brokenStyle
				case res.Links[row].IsRedirect:
					return redirectStyle
				default:
					return workingStyle
				}
			}
			return lipgloss.NewStyle()
		}).
		Rows(rows...)

	builder.WriteString(linkTable.Render())
	builder.WriteString("\n")

	summary := fmt.Sprintf("%d links: %d working, %d redirects, %d broken",
		res.TotalLinks, res.WorkingLinks, res.Redirects, res.BrokenLinks)
	if res.BrokenLinks == 0 {
		builder.WriteString(successStyle.Render(summary))
	} else {
		builder.WriteString(titleStyle.Render(summary))
	}
	builder.WriteString("\n")

	return builder.String()
}

// classLabel returns the display label for a link's classification.
func classLabel(link result.LinkResult) string {
	switch {
	case !link.IsWorking:
		return "BROKEN"
	case link.IsRedirect:
		return "REDIRECT"
	default:
		return "OK"
	}
}
