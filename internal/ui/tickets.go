package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dropoff/internal/ledger"
)

// ticketsView lists outstanding check-ins, oldest first.
type ticketsView struct {
	table table.Model
	rows  []ledger.CheckIn
	width int

	// Inputs of the last setRows, replayed on resize.
	pickupHours int
	now         time.Time
}

func newTicketsView(theme Theme) ticketsView {
	t := table.New(
		table.WithColumns(ticketColumns(80)),
		table.WithFocused(true),
	)
	v := ticketsView{table: t, width: 80}
	v.applyTheme(theme)
	return v
}

func ticketColumns(width int) []table.Column {
	if width >= LayoutWideWidth {
		return []table.Column{
			{Title: "ID", Width: 22},
			{Title: "Name", Width: 22},
			{Title: "Phone", Width: 16},
			{Title: "Size", Width: 10},
			{Title: "Checked In", Width: 19},
			{Title: "Pickup By", Width: 19},
			{Title: "Status", Width: 8},
		}
	}
	return []table.Column{
		{Title: "ID", Width: 20},
		{Title: "Name", Width: 18},
		{Title: "Size", Width: 10},
		{Title: "Pickup By", Width: 16},
		{Title: "Status", Width: 8},
	}
}

func (v *ticketsView) applyTheme(theme Theme) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.BorderMuted)).
		BorderBottom(true).
		Foreground(lipgloss.Color(theme.Muted)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(theme.Text))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(theme.SelectionText)).
		Background(lipgloss.Color(theme.SelectionBg)).
		Bold(false)
	v.table.SetStyles(s)
}

func (v *ticketsView) resize(width, height int) {
	v.width = width
	// Columns must change before rows when the column count changes.
	v.table.SetRows(nil)
	v.table.SetColumns(ticketColumns(width))
	v.table.SetWidth(width)
	v.table.SetHeight(maxInt(height-2, 3))
	v.setRows(v.rows, v.pickupHours, v.now)
}

func (v *ticketsView) setRows(items []ledger.CheckIn, pickupHours int, now time.Time) {
	v.rows = items
	v.pickupHours = pickupHours
	v.now = now
	wide := v.width >= LayoutWideWidth
	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		due := it.Timestamp.Add(time.Duration(pickupHours) * time.Hour)
		status := ticketStatus(it.Timestamp, pickupHours, now)
		if wide {
			rows = append(rows, table.Row{
				it.ID, it.Name, it.Phone, it.BatterySize,
				it.Timestamp.Format(ledger.TimeLayout), due.Format(ledger.TimeLayout), status,
			})
			continue
		}
		rows = append(rows, table.Row{
			truncateMiddle(it.ID, 20), truncate(it.Name, 18), it.BatterySize,
			due.Format("01-02 15:04"), status,
		})
	}
	v.table.SetRows(rows)
	if c := v.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		v.table.SetCursor(len(rows) - 1)
	}
}

func (v ticketsView) selected() (ledger.CheckIn, bool) {
	c := v.table.Cursor()
	if c < 0 || c >= len(v.rows) {
		return ledger.CheckIn{}, false
	}
	return v.rows[c], true
}

// findOutstanding looks up an open ticket by ID in the latest snapshot.
func (m Model) findOutstanding(id string) (ledger.CheckIn, bool) {
	for i := len(m.snapshot.Outstanding) - 1; i >= 0; i-- {
		if m.snapshot.Outstanding[i].ID == id {
			return m.snapshot.Outstanding[i], true
		}
	}
	return ledger.CheckIn{}, false
}

func (m Model) handleTicketsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.backToMenu()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		rec, ok := m.tickets.selected()
		if !ok {
			return m, nil
		}
		cmd := m.openView(ViewCheckOut)
		m.checkOut.input.SetValue(rec.ID)
		m.checkOut.input.CursorEnd()
		return m, cmd
	}
	var cmd tea.Cmd
	m.tickets.table, cmd = m.tickets.table.Update(msg)
	return m, cmd
}

func (m Model) renderTickets() string {
	styles := m.theme.Styles()
	if len(m.tickets.rows) == 0 {
		return m.place(m.panel(styles.MutedText.Render("No batteries waiting for pickup."), 40))
	}

	counts := map[string]int{}
	for _, it := range m.tickets.rows {
		counts[ticketStatus(it.Timestamp, m.pickupHours(), m.now())]++
	}
	summary := strings.Join([]string{
		styles.StatusStyle(statusOpen).Render(fmt.Sprintf("%d %s", counts[statusOpen], statusOpen)),
		styles.StatusStyle(statusDueSoon).Render(fmt.Sprintf("%d %s", counts[statusDueSoon], statusDueSoon)),
		styles.StatusStyle(statusOverdue).Render(fmt.Sprintf("%d %s", counts[statusOverdue], statusOverdue)),
	}, "  ")

	return lipgloss.NewStyle().Padding(0, 1).Render(summary + "\n" + m.tickets.table.View())
}
