package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops labels.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show the phone column in tickets.
	LayoutWideWidth = 120
)

// dueSoonWindow is how close to its pickup time a ticket is flagged.
const dueSoonWindow = 2 * time.Hour

// panel wraps content in the rounded border used by every form.
func (m Model) panel(content string, width int) string {
	return m.theme.Styles().Panel.
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Width(width).
		Render(content)
}

// place centers body in the content area.
func (m Model) place(body string) string {
	return lipgloss.Place(
		m.width,
		m.contentHeight(),
		lipgloss.Center,
		lipgloss.Center,
		body,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
