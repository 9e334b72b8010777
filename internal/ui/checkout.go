package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dropoff/internal/desk"
)

type checkOutForm struct {
	input textinput.Model
}

func newCheckOutForm() checkOutForm {
	ti := newInput("Scan or type the item ID", 64)
	ti.Width = 36
	return checkOutForm{input: ti}
}

func (f *checkOutForm) focus() tea.Cmd {
	return f.input.Focus()
}

type checkOutDoneMsg struct {
	result desk.CheckOutResult
	err    error
}

func (m Model) handleCheckOutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.backToMenu()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitCheckOut()
	}
	var cmd tea.Cmd
	m.checkOut.input, cmd = m.checkOut.input.Update(msg)
	return m, cmd
}

func (m Model) submitCheckOut() (tea.Model, tea.Cmd) {
	if m.busy || m.service == nil {
		return m, nil
	}
	m.busy = true
	ctx, svc, id := m.ctx, m.service, m.checkOut.input.Value()
	return m, func() tea.Msg {
		res, err := svc.CheckOut(ctx, id)
		return checkOutDoneMsg{result: res, err: err}
	}
}

func (m Model) handleCheckOutDone(msg checkOutDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	now := m.now()
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, desk.ErrMissingID):
			m.flash.set(flashWarning, "Please enter the item ID.", now)
		case errors.Is(msg.err, desk.ErrInvalidID):
			m.flash.set(flashWarning, "Item ID cannot contain / or \\.", now)
		default:
			m.flash.set(flashError, "Check-out failed: "+msg.err.Error(), now)
		}
		return m, nil
	}

	text := "Item checked out. Receipts saved."
	level := flashSuccess
	if !msg.result.Known {
		text = fmt.Sprintf("Item %s checked out, but no check-in was found for it. Receipts saved.", msg.result.Record.ID)
		level = flashWarning
	}
	m.flash.set(level, text, now)
	m.checkOut.input.SetValue("")
	return m, m.refreshCmd()
}

func (m Model) renderCheckOut() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Check Out"))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Bold(true).Render(padRight("Item ID", 10)))
	b.WriteString(m.checkOut.input.View())
	b.WriteString("\n\n")

	// Show who the ticket belongs to while typing.
	if id := strings.TrimSpace(m.checkOut.input.Value()); id != "" {
		if rec, ok := m.findOutstanding(id); ok {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s  •  %s  •  %s", rec.Name, rec.Phone, rec.BatterySize)))
			b.WriteString("\n")
		}
	}

	if m.busy {
		b.WriteString(styles.WarningText.Render("Saving..."))
	} else {
		b.WriteString(styles.FaintText.Render("enter to check out"))
	}
	return m.panel(b.String(), 54)
}
