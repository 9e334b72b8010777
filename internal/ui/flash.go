package ui

import (
	"time"
)

// flashTTL is how long a status message stays on screen.
const flashTTL = 6 * time.Second

type flashLevel int

const (
	flashInfo flashLevel = iota
	flashSuccess
	flashWarning
	flashError
)

// flash is the one-line status message that replaces modal message boxes.
type flash struct {
	level flashLevel
	text  string
	at    time.Time
}

func (f *flash) set(level flashLevel, text string, now time.Time) {
	f.level = level
	f.text = text
	f.at = now
}

func (f *flash) expire(now time.Time) {
	if f.text != "" && now.Sub(f.at) >= flashTTL {
		f.text = ""
	}
}

func (m Model) renderFlash() string {
	if m.flash.text == "" {
		return ""
	}
	styles := m.theme.Styles()
	style := styles.InfoText
	prefix := "•"
	switch m.flash.level {
	case flashSuccess:
		style, prefix = styles.SuccessText, "✓"
	case flashWarning:
		style, prefix = styles.WarningText.Bold(true), "!"
	case flashError:
		style, prefix = styles.DangerText, "✗"
	}
	return style.Padding(0, 1).Render(truncate(prefix+" "+m.flash.text, maxInt(m.width-2, 10)))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
