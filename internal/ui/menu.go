package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	label string
	hint  string
	view  View
}

var menuItems = []menuItem{
	{"Check In", "1", ViewCheckIn},
	{"Check Out", "2", ViewCheckOut},
	{"Open Tickets", "3", ViewTickets},
	{"Generate Report", "4", ViewReport},
	{"Settings", "5", ViewSettings},
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.menuIndex > 0 {
			m.menuIndex--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		cmd := m.openView(menuItems[m.menuIndex].view)
		return m, cmd
	case key.Matches(msg, m.keys.GoCheckIn):
		return m, m.openView(ViewCheckIn)
	case key.Matches(msg, m.keys.GoCheckOut):
		return m, m.openView(ViewCheckOut)
	case key.Matches(msg, m.keys.GoTickets):
		return m, m.openView(ViewTickets)
	case key.Matches(msg, m.keys.GoReport):
		return m, m.openView(ViewReport)
	case key.Matches(msg, m.keys.GoSettings):
		return m, m.openView(ViewSettings)
	}
	return m, nil
}

func (m Model) renderMenu() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Battery Manager"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		label := padRight(item.label, 22)
		hint := styles.FaintText.Render(item.hint)
		if i == m.menuIndex {
			b.WriteString(styles.Selected.Render("› " + label))
		} else {
			b.WriteString(styles.Text.Render("  " + label))
		}
		b.WriteString(" ")
		b.WriteString(hint)
		if i < len(menuItems)-1 {
			b.WriteString("\n")
		}
	}
	return m.panel(b.String(), 36)
}
