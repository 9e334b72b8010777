package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dropoff/internal/config"
	"github.com/five82/dropoff/internal/desk"
	"github.com/five82/dropoff/internal/ledger"
	"github.com/five82/dropoff/internal/prefs"
	"github.com/five82/dropoff/internal/state"
)

// View represents the current active screen.
type View int

const (
	ViewMenu View = iota
	ViewCheckIn
	ViewCheckOut
	ViewTickets
	ViewReport
	ViewSettings
)

// Desk is the subset of desk.Service the UI drives.
type Desk interface {
	CheckIn(ctx context.Context, in desk.Intake) (desk.CheckInResult, error)
	CheckOut(ctx context.Context, id string) (desk.CheckOutResult, error)
	Export(kind ledger.Kind, dest string) error
	PickupHours() int
	SetPickupHours(hours int) error
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Service      Desk
	Store        *state.Store
	Config       *config.Config
	PollTick     time.Duration
	ThemeName    string
	PrefsPath    string
	BatterySizes []string
	// Refresh rereads the ledger into Store; called after each desk operation.
	Refresh func() error
	Now     func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	service   Desk
	store     *state.Store
	config    *config.Config
	prefsPath string
	pollTick  time.Duration
	refresh   func() error
	now       func() time.Time
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	busy        bool // a desk operation is in flight
	showHelp    bool
	menuIndex   int
	flash       flash

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Screens
	checkIn  checkInForm
	checkOut checkOutForm
	tickets  ticketsView
	report   reportForm
	settings settingsForm
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sizes := opts.BatterySizes
	if len(sizes) == 0 {
		sizes = config.DefaultBatterySizes()
	}

	theme := GetTheme(themeName)
	return Model{
		ctx:         ctx,
		service:     opts.Service,
		store:       opts.Store,
		config:      opts.Config,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		refresh:     opts.Refresh,
		now:         now,
		keys:        DefaultKeyMap(),
		theme:       theme,
		currentView: ViewMenu,
		checkIn:     newCheckInForm(sizes),
		checkOut:    newCheckOutForm(),
		tickets:     newTicketsView(theme),
		report:      newReportForm(),
		settings:    newSettingsForm(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.tickets.resize(m.width, m.contentHeight())
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = m.now()
		m.tickets.setRows(m.snapshot.Outstanding, m.pickupHours(), m.now())
		return m, nil

	case checkInDoneMsg:
		return m.handleCheckInDone(msg)

	case checkOutDoneMsg:
		return m.handleCheckOutDone(msg)

	case exportDoneMsg:
		return m.handleExportDone(msg)

	case pickupSavedMsg:
		return m.handlePickupSaved(msg)
	}

	// Cursor blink and similar messages belong to whichever input has focus.
	return m.updateActiveInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	}

	switch m.currentView {
	case ViewMenu:
		return m.handleMenuKey(msg)
	case ViewCheckIn:
		return m.handleCheckInKey(msg)
	case ViewCheckOut:
		return m.handleCheckOutKey(msg)
	case ViewTickets:
		return m.handleTicketsKey(msg)
	case ViewReport:
		return m.handleReportKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

// openView switches screens and focuses the first field of forms.
func (m *Model) openView(v View) tea.Cmd {
	m.currentView = v
	switch v {
	case ViewCheckIn:
		return m.checkIn.setFocus(fieldName)
	case ViewCheckOut:
		return m.checkOut.focus()
	case ViewReport:
		return m.report.setFocus(reportFieldKind)
	case ViewSettings:
		m.settings.load(m.pickupHours())
		return m.settings.focus()
	case ViewTickets:
		m.tickets.setRows(m.snapshot.Outstanding, m.pickupHours(), m.now())
	}
	return nil
}

func (m *Model) backToMenu() {
	m.checkIn.blur()
	m.checkOut.input.Blur()
	m.report.blur()
	m.settings.input.Blur()
	m.currentView = ViewMenu
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.tickets.applyTheme(m.theme)
	if m.prefsPath != "" {
		_, _ = prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = m.theme.Name })
	}
}

func (m Model) pickupHours() int {
	if m.service == nil {
		return desk.DefaultPickupHours
	}
	return m.service.PickupHours()
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	m.flash.expire(m.now())
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m Model) updateActiveInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewCheckIn:
		cmd = m.checkIn.update(msg)
	case ViewCheckOut:
		m.checkOut.input, cmd = m.checkOut.input.Update(msg)
	case ViewReport:
		cmd = m.report.update(msg)
	case ViewSettings:
		m.settings.input, cmd = m.settings.input.Update(msg)
	}
	return m, cmd
}

// renderMain renders header, command bar, the active screen and the flash line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFlash())
	return b.String()
}

func (m Model) renderContent() string {
	var body string
	switch m.currentView {
	case ViewMenu:
		body = m.renderMenu()
	case ViewCheckIn:
		body = m.renderCheckIn()
	case ViewCheckOut:
		body = m.renderCheckOut()
	case ViewTickets:
		return m.renderTickets()
	case ViewReport:
		body = m.renderReport()
	case ViewSettings:
		body = m.renderSettings()
	}
	return m.place(body)
}

// contentHeight is the space left after header, command bar and flash line.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refreshCmd rereads the ledger and then hands the store snapshot to the model.
func (m Model) refreshCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	refresh, store := m.refresh, m.store
	return func() tea.Msg {
		if refresh != nil {
			_ = refresh()
		}
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
