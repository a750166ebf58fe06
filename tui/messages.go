package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/result"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/scanner"
)

// ScanProgressMsg reports progress for a single probed link.
type ScanProgressMsg struct {
	Checked int
	Total   int
	URL     string
}

// ScanDoneMsg signals the scan has completed.
type ScanDoneMsg struct {
	Result *result.ScanResult
	Err    error
}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel. When the channel closes, it returns a ScanDoneMsg with nil Result
// (the actual result comes from startScan).
func waitForProgress(ch <-chan scanner.ScanEvent) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return ScanDoneMsg{}
		}
		return ScanProgressMsg{
			Checked: evt.Checked,
			Total:   evt.Total,
			URL:     evt.URL,
		}
	}
}
