package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dropoff/internal/config"
	"github.com/five82/dropoff/internal/ledger"
)

// Report form fields in tab order.
const (
	reportFieldKind = iota
	reportFieldDest
)

var reportKinds = []ledger.Kind{ledger.KindCheckIn, ledger.KindCheckOut}

type reportForm struct {
	kindIdx int
	dest    textinput.Model
	focus   int
}

func defaultExportPath(kind ledger.Kind) string {
	return "~/dropoff-" + string(kind) + ".csv"
}

func newReportForm() reportForm {
	ti := newInput("Destination CSV path", 256)
	ti.Width = 36
	ti.SetValue(defaultExportPath(ledger.KindCheckIn))
	return reportForm{dest: ti}
}

func (f *reportForm) kind() ledger.Kind {
	return reportKinds[f.kindIdx]
}

func (f *reportForm) setFocus(i int) tea.Cmd {
	f.focus = i
	if i == reportFieldDest {
		f.dest.CursorEnd()
		return f.dest.Focus()
	}
	f.dest.Blur()
	return nil
}

func (f *reportForm) blur() {
	f.dest.Blur()
}

func (f *reportForm) update(msg tea.Msg) tea.Cmd {
	if f.focus != reportFieldDest {
		return nil
	}
	var cmd tea.Cmd
	f.dest, cmd = f.dest.Update(msg)
	return cmd
}

// cycleKind switches logs and follows along with the default path if the
// clerk has not typed their own.
func (f *reportForm) cycleKind(delta int) {
	prev := f.kind()
	n := len(reportKinds)
	f.kindIdx = ((f.kindIdx+delta)%n + n) % n
	if f.dest.Value() == defaultExportPath(prev) {
		f.dest.SetValue(defaultExportPath(f.kind()))
	}
}

type exportDoneMsg struct {
	kind ledger.Kind
	dest string
	err  error
}

func (m Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.backToMenu()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitExport()
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		next := reportFieldDest
		if m.report.focus == reportFieldDest {
			next = reportFieldKind
		}
		return m, m.report.setFocus(next)
	}

	if m.report.focus == reportFieldKind {
		switch {
		case key.Matches(msg, m.keys.Left):
			m.report.cycleKind(-1)
		case key.Matches(msg, m.keys.Right), msg.String() == " ":
			m.report.cycleKind(1)
		}
		return m, nil
	}
	return m, m.report.update(msg)
}

func (m Model) submitExport() (tea.Model, tea.Cmd) {
	if m.busy || m.service == nil {
		return m, nil
	}
	kind := m.report.kind()
	dest, err := config.ExpandPath(m.report.dest.Value())
	if err != nil {
		m.flash.set(flashWarning, "Please enter a destination path.", m.now())
		return m, nil
	}
	m.busy = true
	svc := m.service
	return m, func() tea.Msg {
		return exportDoneMsg{kind: kind, dest: dest, err: svc.Export(kind, dest)}
	}
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	now := m.now()
	switch {
	case msg.err == nil:
		m.flash.set(flashSuccess, fmt.Sprintf("Report saved to %s.", msg.dest), now)
	case errors.Is(msg.err, ledger.ErrNoRecords):
		m.flash.set(flashWarning, fmt.Sprintf("No %s records yet.", msg.kind), now)
	default:
		m.flash.set(flashError, "Export failed: "+msg.err.Error(), now)
	}
	return m, nil
}

func (m Model) renderReport() string {
	styles := m.theme.Styles()
	f := m.report

	label := func(i int, text string) string {
		if f.focus == i {
			return styles.AccentText.Bold(true).Render(padRight(text, 14))
		}
		return styles.MutedText.Render(padRight(text, 14))
	}

	var kinds []string
	for i, k := range reportKinds {
		text := " " + string(k) + " "
		switch {
		case i == f.kindIdx && f.focus == reportFieldKind:
			kinds = append(kinds, styles.Selected.Render(text))
		case i == f.kindIdx:
			kinds = append(kinds, styles.Text.Bold(true).Render(text))
		default:
			kinds = append(kinds, styles.FaintText.Render(text))
		}
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Generate Report"))
	b.WriteString("\n\n")
	b.WriteString(label(reportFieldKind, "Log") + strings.Join(kinds, " ") + "\n")
	b.WriteString(label(reportFieldDest, "Save As") + f.dest.View())
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(styles.WarningText.Render("Saving..."))
	} else {
		b.WriteString(styles.FaintText.Render("enter to save a copy of the log"))
	}
	return m.panel(b.String(), 60)
}
