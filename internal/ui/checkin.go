package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dropoff/internal/config"
	"github.com/five82/dropoff/internal/desk"
)

// Check-in form fields in tab order.
const (
	fieldName = iota
	fieldPhone
	fieldSize
	fieldCustomSize
)

type checkInForm struct {
	name   textinput.Model
	phone  textinput.Model
	custom textinput.Model

	sizes   []string
	sizeIdx int // -1 until a size is picked
	focus   int
}

func newCheckInForm(sizes []string) checkInForm {
	return checkInForm{
		name:    newInput("Customer name", 64),
		phone:   newInput("Phone number", 32),
		custom:  newInput("Battery size", 32),
		sizes:   sizes,
		sizeIdx: -1,
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 30
	ti.Prompt = ""
	return ti
}

func (f *checkInForm) otherSelected() bool {
	return f.sizeIdx >= 0 && f.sizes[f.sizeIdx] == config.OtherSize
}

// fieldCount is the number of focusable fields; the free-text size only
// exists while Other is selected.
func (f *checkInForm) fieldCount() int {
	if f.otherSelected() {
		return fieldCustomSize + 1
	}
	return fieldSize + 1
}

func (f *checkInForm) setFocus(i int) tea.Cmd {
	f.blur()
	f.focus = i
	switch i {
	case fieldName:
		return f.name.Focus()
	case fieldPhone:
		return f.phone.Focus()
	case fieldCustomSize:
		return f.custom.Focus()
	}
	return nil
}

func (f *checkInForm) move(delta int) tea.Cmd {
	n := f.fieldCount()
	return f.setFocus(((f.focus+delta)%n + n) % n)
}

func (f *checkInForm) blur() {
	f.name.Blur()
	f.phone.Blur()
	f.custom.Blur()
}

func (f *checkInForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldPhone:
		f.phone, cmd = f.phone.Update(msg)
	case fieldCustomSize:
		f.custom, cmd = f.custom.Update(msg)
	}
	return cmd
}

// cycleSize moves through the presets. A preset copies its label into the
// size; Other clears the free-text field for typing.
func (f *checkInForm) cycleSize(delta int) {
	if len(f.sizes) == 0 {
		return
	}
	n := len(f.sizes)
	if f.sizeIdx < 0 {
		if delta > 0 {
			f.sizeIdx = 0
		} else {
			f.sizeIdx = n - 1
		}
	} else {
		f.sizeIdx = ((f.sizeIdx+delta)%n + n) % n
	}
	if f.otherSelected() {
		f.custom.SetValue("")
	}
}

func (f *checkInForm) batterySize() string {
	switch {
	case f.sizeIdx < 0:
		return ""
	case f.otherSelected():
		return f.custom.Value()
	default:
		return f.sizes[f.sizeIdx]
	}
}

func (f *checkInForm) intake() desk.Intake {
	return desk.Intake{
		Name:        f.name.Value(),
		Phone:       f.phone.Value(),
		BatterySize: f.batterySize(),
	}
}

func (f *checkInForm) reset() {
	f.name.SetValue("")
	f.phone.SetValue("")
	f.custom.SetValue("")
	f.sizeIdx = -1
}

type checkInDoneMsg struct {
	result desk.CheckInResult
	err    error
}

func (m Model) handleCheckInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.backToMenu()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitCheckIn()
	case key.Matches(msg, m.keys.NextField):
		return m, m.checkIn.move(1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.checkIn.move(-1)
	}

	if m.checkIn.focus == fieldSize {
		switch {
		case key.Matches(msg, m.keys.Left):
			m.checkIn.cycleSize(-1)
		case key.Matches(msg, m.keys.Right), msg.String() == " ":
			m.checkIn.cycleSize(1)
		}
		return m, nil
	}
	return m, m.checkIn.update(msg)
}

func (m Model) submitCheckIn() (tea.Model, tea.Cmd) {
	if m.busy || m.service == nil {
		return m, nil
	}
	m.busy = true
	ctx, svc, in := m.ctx, m.service, m.checkIn.intake()
	return m, func() tea.Msg {
		res, err := svc.CheckIn(ctx, in)
		return checkInDoneMsg{result: res, err: err}
	}
}

func (m Model) handleCheckInDone(msg checkInDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	now := m.now()
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, desk.ErrMissingFields):
			m.flash.set(flashWarning, "Please fill all fields.", now)
		case errors.Is(msg.err, desk.ErrInvalidID):
			m.flash.set(flashWarning, "Battery size cannot contain / or \\.", now)
		case errors.Is(msg.err, desk.ErrUnprintableID):
			m.flash.set(flashWarning, "Name and size must use plain letters to print a barcode.", now)
		default:
			m.flash.set(flashError, "Check-in failed: "+msg.err.Error(), now)
		}
		return m, nil
	}

	m.flash.set(flashSuccess,
		fmt.Sprintf("Item checked in as %s. Receipt saved as PDF.", msg.result.Record.ID), now)
	m.checkIn.reset()
	cmds := []tea.Cmd{m.refreshCmd()}
	if m.currentView == ViewCheckIn {
		cmds = append(cmds, m.checkIn.setFocus(fieldName))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) renderCheckIn() string {
	styles := m.theme.Styles()
	f := m.checkIn

	label := func(i int, text string) string {
		if f.focus == i {
			return styles.AccentText.Bold(true).Render(padRight(text, 14))
		}
		return styles.MutedText.Render(padRight(text, 14))
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Check In"))
	b.WriteString("\n\n")
	b.WriteString(label(fieldName, "Name") + f.name.View() + "\n")
	b.WriteString(label(fieldPhone, "Phone") + f.phone.View() + "\n")

	sizeText, sizeStyle := "‹ select ›", styles.FaintText
	if f.sizeIdx >= 0 {
		sizeText, sizeStyle = "‹ "+f.sizes[f.sizeIdx]+" ›", styles.Text
	}
	if f.focus == fieldSize {
		sizeText, sizeStyle = " "+sizeText+" ", styles.Selected
	}
	size := sizeStyle.Render(sizeText)
	b.WriteString(label(fieldSize, "Battery Size") + size)

	if f.otherSelected() {
		b.WriteString("\n" + label(fieldCustomSize, "Custom Size") + f.custom.View())
	}

	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(styles.WarningText.Render("Saving..."))
	} else {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("Pickup in %d hours  •  enter to check in", m.pickupHours())))
	}
	return m.panel(b.String(), 54)
}
