package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dropoff/internal/desk"
	"github.com/five82/dropoff/internal/ledger"
	"github.com/five82/dropoff/internal/prefs"
	"github.com/five82/dropoff/internal/state"
)

var testNow = time.Date(2024, 7, 4, 10, 15, 30, 123456*int(time.Microsecond), time.Local)

type testDesk struct {
	svc   *desk.Service
	store *state.Store
	dir   string
}

func newTestModel(t *testing.T) (Model, testDesk) {
	t.Helper()
	dir := t.TempDir()
	l, err := ledger.Open(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	svc, err := desk.New(desk.Options{Ledger: l, Now: func() time.Time { return testNow }})
	if err != nil {
		t.Fatalf("desk.New: %v", err)
	}
	store := &state.Store{}
	m := New(Options{
		Service:   svc,
		Store:     store,
		PrefsPath: filepath.Join(dir, "prefs.toml"),
		Now:       func() time.Time { return testNow },
		Refresh: func() error {
			summary, err := state.Load(l)
			store.Update(summary, err)
			return err
		},
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), testDesk{svc: svc, store: store, dir: dir}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// finish runs a desk command and feeds its result back into the model.
func finish(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command, got nil")
	}
	m, _ = send(t, m, cmd())
	return m
}

func TestMenu_ShortcutsOpenScreens(t *testing.T) {
	cases := []struct {
		key  string
		want View
	}{
		{"1", ViewCheckIn},
		{"i", ViewCheckIn},
		{"2", ViewCheckOut},
		{"3", ViewTickets},
		{"4", ViewReport},
		{"5", ViewSettings},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			m, _ := newTestModel(t)
			m, _ = send(t, m, runes(tc.key))
			if m.currentView != tc.want {
				t.Fatalf("currentView = %d, want %d", m.currentView, tc.want)
			}
			m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			if m.currentView != ViewMenu {
				t.Fatalf("after esc currentView = %d, want menu", m.currentView)
			}
		})
	}
}

func TestMenu_QuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := send(t, m, runes("e"))
	if cmd == nil {
		t.Fatalf("quit returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit cmd did not return tea.QuitMsg")
	}
}

func TestCheckIn_SubmitWritesTicket(t *testing.T) {
	m, d := newTestModel(t)

	m, _ = send(t, m,
		runes("1"),
		runes("Jane Doe"),
		tea.KeyMsg{Type: tea.KeyTab},
		runes("555-0100"),
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyRight},
	)
	if got := m.checkIn.batterySize(); got != "Group 24" {
		t.Fatalf("batterySize = %q, want Group 24", got)
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.busy {
		t.Fatalf("model not busy after submit")
	}
	m = finish(t, m, cmd)

	if m.busy {
		t.Fatalf("model still busy after result")
	}
	want := "Item checked in as Group 24-JD-3456. Receipt saved as PDF."
	if m.flash.text != want || m.flash.level != flashSuccess {
		t.Fatalf("flash = %q (level %d), want %q", m.flash.text, m.flash.level, want)
	}
	if m.checkIn.name.Value() != "" || m.checkIn.sizeIdx != -1 {
		t.Fatalf("form not reset: name=%q sizeIdx=%d", m.checkIn.name.Value(), m.checkIn.sizeIdx)
	}

	rows, err := d.svc.Ledger().CheckIns()
	if err != nil {
		t.Fatalf("CheckIns: %v", err)
	}
	if len(rows) != 1 || rows[0].Phone != "555-0100" {
		t.Fatalf("rows = %+v, want one row for 555-0100", rows)
	}
}

func TestCheckIn_OtherSizeUsesFreeText(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(t, m,
		runes("1"),
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyLeft}, // wraps to Other
	)
	if !m.checkIn.otherSelected() {
		t.Fatalf("Other not selected, sizeIdx=%d", m.checkIn.sizeIdx)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("U1R"))
	if m.checkIn.focus != fieldCustomSize {
		t.Fatalf("focus = %d, want custom size field", m.checkIn.focus)
	}
	if got := m.checkIn.batterySize(); got != "U1R" {
		t.Fatalf("batterySize = %q, want U1R", got)
	}
}

func TestCheckIn_MissingFieldsWarns(t *testing.T) {
	m, d := newTestModel(t)
	m, cmd := send(t, m, runes("1"), tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)

	if m.flash.text != "Please fill all fields." || m.flash.level != flashWarning {
		t.Fatalf("flash = %q (level %d), want fill-all-fields warning", m.flash.text, m.flash.level)
	}
	if _, err := os.Stat(filepath.Join(d.svc.Ledger().Dir(), "checkin.csv")); !os.IsNotExist(err) {
		t.Fatalf("checkin.csv exists after rejected check-in (err=%v)", err)
	}
}

func TestCheckIn_UnprintableNameWarns(t *testing.T) {
	m, d := newTestModel(t)
	m, cmd := send(t, m,
		runes("1"),
		runes("Émile Zola"),
		tea.KeyMsg{Type: tea.KeyTab},
		runes("555"),
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	m = finish(t, m, cmd)

	if m.flash.level != flashWarning || !strings.Contains(m.flash.text, "barcode") {
		t.Fatalf("flash = %q (level %d), want barcode warning", m.flash.text, m.flash.level)
	}
	if m.checkIn.name.Value() != "Émile Zola" {
		t.Fatalf("name = %q, want form kept for correction", m.checkIn.name.Value())
	}
	rows, err := d.svc.Ledger().CheckIns()
	if err != nil {
		t.Fatalf("CheckIns: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("CheckIns = %d rows, want 0", len(rows))
	}
}

func TestCheckOut_UnknownIDWarnsButRecords(t *testing.T) {
	m, d := newTestModel(t)
	m, cmd := send(t, m, runes("2"), runes("Group 24-JD-9999"), tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)

	if m.flash.level != flashWarning || !strings.Contains(m.flash.text, "no check-in was found") {
		t.Fatalf("flash = %q (level %d), want unknown-id warning", m.flash.text, m.flash.level)
	}
	outs, err := d.svc.Ledger().CheckOuts()
	if err != nil {
		t.Fatalf("CheckOuts: %v", err)
	}
	if len(outs) != 1 || outs[0].ID != "Group 24-JD-9999" {
		t.Fatalf("CheckOuts = %+v, want the typed ID", outs)
	}
	if m.checkOut.input.Value() != "" {
		t.Fatalf("input = %q, want cleared", m.checkOut.input.Value())
	}
}

func TestCheckOut_EmptyIDWarns(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := send(t, m, runes("2"), tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)
	if m.flash.text != "Please enter the item ID." {
		t.Fatalf("flash = %q, want item ID warning", m.flash.text)
	}
}

func TestTickets_EnterPrefillsCheckOut(t *testing.T) {
	m, d := newTestModel(t)
	res, err := d.svc.CheckIn(m.ctx, desk.Intake{Name: "Ann Lee", Phone: "1", BatterySize: "Group 35"})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	summary, err := state.Load(d.svc.Ledger())
	if err != nil {
		t.Fatalf("state.Load: %v", err)
	}
	d.store.Update(summary, nil)

	m, _ = send(t, m, snapshotMsg(d.store.Snapshot()), runes("3"))
	if n := len(m.tickets.table.Rows()); n != 1 {
		t.Fatalf("ticket rows = %d, want 1", n)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.currentView != ViewCheckOut {
		t.Fatalf("currentView = %d, want check out", m.currentView)
	}
	if got := m.checkOut.input.Value(); got != res.Record.ID {
		t.Fatalf("check-out input = %q, want %q", got, res.Record.ID)
	}
}

func TestSettings_SavesPickupHours(t *testing.T) {
	m, d := newTestModel(t)
	m, _ = send(t, m, runes("5"))
	if got := m.settings.input.Value(); got != "24" {
		t.Fatalf("settings input = %q, want 24", got)
	}
	m, cmd := send(t, m,
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		runes("36"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	m = finish(t, m, cmd)

	if m.flash.text != "Pickup time set to 36 hours." {
		t.Fatalf("flash = %q, want pickup confirmation", m.flash.text)
	}
	if got := d.svc.PickupHours(); got != 36 {
		t.Fatalf("PickupHours = %d, want 36", got)
	}
}

func TestSettings_RejectsZero(t *testing.T) {
	m, d := newTestModel(t)
	m, _ = send(t, m, runes("5"))
	m.settings.input.SetValue("0")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("expected no command for invalid hours")
	}
	if m.flash.text != "Please enter a valid number." || m.flash.level != flashError {
		t.Fatalf("flash = %q (level %d), want invalid number error", m.flash.text, m.flash.level)
	}
	if got := d.svc.PickupHours(); got != 24 {
		t.Fatalf("PickupHours = %d, want unchanged 24", got)
	}
}

func TestReport_ExportsLog(t *testing.T) {
	m, d := newTestModel(t)
	if _, err := d.svc.CheckIn(m.ctx, desk.Intake{Name: "Ann", Phone: "1", BatterySize: "Group 35"}); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	dest := filepath.Join(d.dir, "out", "report.csv")

	m, _ = send(t, m, runes("4"))
	m.report.dest.SetValue(dest)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)

	if m.flash.level != flashSuccess {
		t.Fatalf("flash = %q (level %d), want success", m.flash.text, m.flash.level)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "Ann,1,Group 35,") {
		t.Fatalf("export = %q, want the check-in row", data)
	}
}

func TestReport_NoRecordsWarns(t *testing.T) {
	m, d := newTestModel(t)
	m, _ = send(t, m, runes("4"), tea.KeyMsg{Type: tea.KeyRight})
	if m.report.kind() != ledger.KindCheckOut {
		t.Fatalf("kind = %q, want checkout", m.report.kind())
	}
	if got := m.report.dest.Value(); got != "~/dropoff-checkout.csv" {
		t.Fatalf("dest = %q, want default to follow kind", got)
	}
	m.report.dest.SetValue(filepath.Join(d.dir, "out.csv"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)
	if m.flash.text != "No checkout records yet." {
		t.Fatalf("flash = %q, want no records warning", m.flash.text)
	}
}

func TestCycleTheme_PersistsPreference(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", p.Theme)
	}
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(t, m, runes("?"))
	if !m.showHelp {
		t.Fatalf("help not shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}
	m, _ = send(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("help still shown")
	}
}

func TestFlash_Expires(t *testing.T) {
	var f flash
	f.set(flashInfo, "hello", testNow)
	f.expire(testNow.Add(flashTTL - time.Second))
	if f.text == "" {
		t.Fatalf("flash expired early")
	}
	f.expire(testNow.Add(flashTTL))
	if f.text != "" {
		t.Fatalf("flash = %q, want expired", f.text)
	}
}

func TestTicketStatus(t *testing.T) {
	in := testNow
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"fresh", in.Add(time.Hour), statusOpen},
		{"due soon", in.Add(23 * time.Hour), statusDueSoon},
		{"overdue", in.Add(25 * time.Hour), statusOverdue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ticketStatus(in, 24, tc.now); got != tc.want {
				t.Fatalf("ticketStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("Group 24-JD-3456", 7)
	if len([]rune(got)) > 7 {
		t.Fatalf("got %q (%d runes), want <=7", got, len([]rune(got)))
	}
}

func TestView_RendersEveryScreen(t *testing.T) {
	m, _ := newTestModel(t)
	for _, key := range []string{"1", "2", "3", "4", "5"} {
		m, _ = send(t, m, runes(key))
		if out := m.View(); out == "" {
			t.Fatalf("view %s rendered empty", key)
		}
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	}
}
