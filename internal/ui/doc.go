// Package ui provides the terminal front end for the drop-off desk.
//
// The UI is a Bubble Tea program. Model owns one value per screen (menu,
// check-in form, check-out form, open tickets table, report export form and
// settings) and routes key messages to the active one. Desk operations run as
// tea.Cmds and report back through *DoneMsg values; results surface in a
// single flash line under the content area instead of modal dialogs.
//
// A state.Store fed by the app poller supplies the open tickets and header
// counts, so several desks sharing one data directory see each other's work.
//
// Files:
//
//   - app.go: Model, routing, Run
//   - checkin.go, checkout.go, tickets.go, report.go, settings.go: screens
//   - header.go, help.go, flash.go, menu.go, layout.go: chrome
//   - theme.go, style_helpers.go, strings.go: styling helpers
package ui
