// Package tui provides the Bubble Tea terminal UI for the bio page scanner,
// displaying live probe progress and a styled summary of results.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/result"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/scanner"
)

// Model is the Bubble Tea model for the scan TUI.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	scanInst   *scanner.Scanner
	pageURL    string
	spinner    spinner.Model
	progressCh <-chan scanner.ScanEvent

	checked  int
	total    int
	current  string
	quitting bool
	done     bool
	result   *result.ScanResult
	err      error
	width    int
}

// NewModel creates a TUI model wired to the given scanner and progress channel.
func NewModel(ctx context.Context, cancel context.CancelFunc, scanInst *scanner.Scanner, pageURL string, progressCh <-chan scanner.ScanEvent) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		scanInst:   scanInst,
		pageURL:    pageURL,
		spinner:    spin,
		progressCh: progressCh,
	}
}

// Init starts the spinner, scan, and progress listener concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startScan(), waitForProgress(m.progressCh))
}

// startScan returns a tea.Cmd that runs the scan and sends ScanDoneMsg.
func (m Model) startScan() tea.Cmd {
	return func() tea.Msg {
		res, err := m.scanInst.Scan(m.ctx, m.pageURL)
		if err != nil {
			err = fmt.Errorf("scan: %w", err)
		}
		return ScanDoneMsg{Result: res, Err: err}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ScanProgressMsg:
		m.checked = msg.Checked
		m.total = msg.Total
		m.current = msg.URL
		return m, waitForProgress(m.progressCh)

	case ScanDoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.result != nil {
		return RenderSummary(m.result)
	}
	if m.done && m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	return fmt.Sprintf("%s Scanning... probed %d of %d links\n%s\n",
		m.spinner.View(), m.checked, m.total,
		dimStyle.Render("  "+m.current))
}

// HasBrokenLinks reports whether the scan found any broken links.
func (m Model) HasBrokenLinks() bool {
	return m.result != nil && m.result.BrokenLinks > 0
}

// GetResult returns the scan result for output formatting.
func (m Model) GetResult() *result.ScanResult {
	return m.result
}
