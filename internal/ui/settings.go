package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dropoff/internal/desk"
)

type settingsForm struct {
	input textinput.Model
}

func newSettingsForm() settingsForm {
	ti := newInput("Hours", 6)
	ti.Width = 8
	ti.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return errors.New("digits only")
			}
		}
		return nil
	}
	return settingsForm{input: ti}
}

func (f *settingsForm) load(hours int) {
	f.input.SetValue(strconv.Itoa(hours))
	f.input.CursorEnd()
}

func (f *settingsForm) focus() tea.Cmd {
	return f.input.Focus()
}

type pickupSavedMsg struct {
	hours int
	err   error
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.backToMenu()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitPickupHours()
	}
	var cmd tea.Cmd
	m.settings.input, cmd = m.settings.input.Update(msg)
	return m, cmd
}

func (m Model) submitPickupHours() (tea.Model, tea.Cmd) {
	if m.busy || m.service == nil {
		return m, nil
	}
	hours, err := strconv.Atoi(strings.TrimSpace(m.settings.input.Value()))
	if err != nil || hours < 1 {
		m.flash.set(flashError, "Please enter a valid number.", m.now())
		return m, nil
	}
	m.busy = true
	svc := m.service
	return m, func() tea.Msg {
		return pickupSavedMsg{hours: hours, err: svc.SetPickupHours(hours)}
	}
}

func (m Model) handlePickupSaved(msg pickupSavedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	now := m.now()
	switch {
	case msg.err == nil:
		m.flash.set(flashSuccess, fmt.Sprintf("Pickup time set to %d hours.", msg.hours), now)
		m.tickets.setRows(m.snapshot.Outstanding, msg.hours, now)
	case errors.Is(msg.err, desk.ErrInvalidPickupHours):
		m.flash.set(flashError, "Please enter a valid number.", now)
	default:
		m.flash.set(flashError, "Could not save pickup time: "+msg.err.Error(), now)
	}
	return m, nil
}

func (m Model) renderSettings() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Bold(true).Render(padRight("Pickup Hours", 14)))
	b.WriteString(m.settings.input.View())
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(padRight("Theme", 14)))
	b.WriteString(styles.Text.Render(m.theme.Name))
	b.WriteString(styles.FaintText.Render("  (ctrl+t)"))
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(styles.WarningText.Render("Saving..."))
	} else {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("Currently %d hours  •  enter to save", m.pickupHours())))
	}
	return m.panel(b.String(), 48)
}
