package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dropoff/internal/ledger"
)

// renderHeader renders the status bar: shop, open and overdue counts, pickup
// window and last ledger read.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := "  "

	shop := "dropoff"
	if m.config != nil && m.config.ShopName != "" {
		shop = m.config.ShopName
	}
	parts := []string{bg.Render(shop, styles.Logo)}

	if !m.snapshot.HasData && m.snapshot.LastError == nil {
		parts = append(parts, bg.Render("Reading ledger...", styles.WarningText.Bold(true)))
		return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
	}

	open := len(m.snapshot.Outstanding)
	overdue := countOverdue(m.snapshot.Outstanding, m.pickupHours(), m.now())

	openLabel, overdueLabel, pickupLabel := "Open:", "Overdue:", "Pickup:"
	if compact {
		openLabel, overdueLabel, pickupLabel = "O:", "!:", "P:"
	}
	overdueStyle := styles.DangerText
	if overdue == 0 {
		overdueStyle = styles.MutedText
	}
	parts = append(parts,
		bg.Render(openLabel, styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", open), styles.Text),
		bg.Render(overdueLabel, styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", overdue), overdueStyle),
		bg.Render(pickupLabel, styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%dh", m.pickupHours()), styles.Text),
	)
	if !compact {
		parts = append(parts, bg.Render(
			fmt.Sprintf("In %d  •  Out %d", m.snapshot.CheckIns, m.snapshot.CheckOuts), styles.FaintText))
	}

	if !m.lastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.lastUpdated.Format("15:04:05"), styles.MutedText))
	}

	if m.snapshot.LastError != nil {
		limit := 80
		if compact {
			limit = 40
		}
		label := "ERROR"
		if m.snapshot.IsStale() {
			label = "STALE"
		}
		parts = append(parts,
			bg.Render(label, styles.DangerText)+bg.Space()+
				bg.Render(truncate(m.snapshot.LastError.Error(), limit), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderCommandBar shows the keys that matter on the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var hints [][2]string
	switch m.currentView {
	case ViewMenu:
		hints = [][2]string{{"1-5", "open"}, {"j/k", "move"}, {"enter", "select"}, {"?", "help"}, {"e", "quit"}}
	case ViewCheckIn:
		hints = [][2]string{{"tab", "next field"}, {"←/→", "battery size"}, {"enter", "check in"}, {"esc", "back"}}
	case ViewCheckOut:
		hints = [][2]string{{"enter", "check out"}, {"esc", "back"}}
	case ViewTickets:
		hints = [][2]string{{"j/k", "move"}, {"enter", "check out selected"}, {"esc", "back"}}
	case ViewReport:
		hints = [][2]string{{"←/→", "log"}, {"tab", "next field"}, {"enter", "save CSV"}, {"esc", "back"}}
	case ViewSettings:
		hints = [][2]string{{"enter", "save"}, {"ctrl+t", "theme"}, {"esc", "back"}}
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render("<"+h[0]+">")+" "+styles.MutedText.Render(h[1]))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, "  "))
}

func countOverdue(items []ledger.CheckIn, pickupHours int, now time.Time) int {
	n := 0
	for _, it := range items {
		if ticketStatus(it.Timestamp, pickupHours, now) == statusOverdue {
			n++
		}
	}
	return n
}

const (
	statusOpen    = "open"
	statusDueSoon = "due"
	statusOverdue = "overdue"
)

// ticketStatus classifies an open ticket against its promised pickup time.
func ticketStatus(checkedIn time.Time, pickupHours int, now time.Time) string {
	due := checkedIn.Add(time.Duration(pickupHours) * time.Hour)
	switch {
	case now.After(due):
		return statusOverdue
	case due.Sub(now) <= dueSoonWindow:
		return statusDueSoon
	default:
		return statusOpen
	}
}
