package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/catalogue/internal/logging"
)

type diagnosticsMsg struct {
	lines []string
	err   error
}

func (d diagnosticsMsg) content() string {
	if len(d.lines) == 0 {
		return ""
	}
	return strings.Join(d.lines, "\n")
}

// loadDiagnosticsCmd reads the tail of the log file off the update loop.
func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return diagnosticsMsg{}
		}
		lines, err := logging.Tail(path, diagnosticsLines)
		return diagnosticsMsg{lines: lines, err: err}
	}
}

// renderDiagnostics renders the log overlay.
func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()

	title := styles.Title.Render("Log")
	if m.logFile != "" {
		title += "  " + styles.MutedText.Render(truncate(m.logFile, max(m.width-12, 10)))
	}

	var body string
	switch {
	case m.logFile == "":
		body = styles.MutedText.Render("Logging is disabled")
	case m.diagnosticsErr != nil:
		body = styles.DangerText.Render("Could not read log: " + m.diagnosticsErr.Error())
	case m.diagnostics.TotalLineCount() == 0 || strings.TrimSpace(m.diagnostics.View()) == "":
		body = styles.MutedText.Render("No log entries yet")
	default:
		body = m.diagnostics.View()
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(0, 1).
		Width(max(m.width-2, 20))

	hint := styles.FaintText.Render("esc close  ·  j/k scroll")
	return box.Render(title + "\n\n" + body + "\n\n" + hint)
}
