package state

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/dropoff/internal/ledger"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	summary := &Summary{
		Outstanding: []ledger.CheckIn{{ID: "A-1"}, {ID: "B-2"}},
		CheckIns:    3,
		CheckOuts:   1,
	}

	before := time.Now()
	s.Update(summary, nil)

	snap := s.Snapshot()
	if !snap.HasData || snap.CheckIns != 3 || snap.CheckOuts != 1 {
		t.Fatalf("snapshot = %#v, want HasData with counts 3/1", snap)
	}
	if len(snap.Outstanding) != 2 || snap.Outstanding[0].ID != "A-1" {
		t.Fatalf("snapshot outstanding = %#v, want 2 items", snap.Outstanding)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	snap.Outstanding[0].ID = "mutated"
	summary.Outstanding[1].ID = "mutated"
	again := s.Snapshot()
	if again.Outstanding[0].ID != "A-1" || again.Outstanding[1].ID != "B-2" {
		t.Fatalf("store shares memory with callers: %#v", again.Outstanding)
	}
}

func TestStore_ErrorKeepsPreviousData(t *testing.T) {
	var s Store
	s.Update(&Summary{CheckIns: 5}, nil)

	boom := errors.New("read failed")
	s.Update(nil, boom)
	s.Update(nil, boom)

	snap := s.Snapshot()
	if snap.CheckIns != 5 || !snap.HasData {
		t.Fatalf("snapshot = %#v, want previous data kept", snap)
	}
	if !errors.Is(snap.LastError, boom) {
		t.Fatalf("LastError = %v, want %v", snap.LastError, boom)
	}
	if !snap.IsStale() {
		t.Fatalf("IsStale = false after 2 failures, want true")
	}

	s.Update(&Summary{CheckIns: 6}, nil)
	snap = s.Snapshot()
	if snap.LastError != nil || snap.ConsecutiveFailures != 0 || snap.IsStale() {
		t.Fatalf("snapshot = %#v, want errors cleared", snap)
	}
}

func TestStore_NilSummaryClearsData(t *testing.T) {
	var s Store
	s.Update(&Summary{CheckIns: 1}, nil)
	s.Update(nil, nil)
	if snap := s.Snapshot(); snap.HasData || snap.CheckIns != 0 {
		t.Fatalf("snapshot = %#v, want cleared", snap)
	}
}

func TestLoad_CountsAndOutstanding(t *testing.T) {
	l, err := ledger.Open(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	now := time.Now()
	for _, id := range []string{"A-1", "B-2"} {
		if err := l.AppendCheckIn(ledger.CheckIn{Name: "n", Phone: "p", BatterySize: "s", ID: id, Timestamp: now}); err != nil {
			t.Fatalf("AppendCheckIn: %v", err)
		}
	}
	if err := l.AppendCheckOut(ledger.CheckOut{ID: "A-1", Timestamp: now}); err != nil {
		t.Fatalf("AppendCheckOut: %v", err)
	}

	summary, err := Load(l)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if summary.CheckIns != 2 || summary.CheckOuts != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", summary.CheckIns, summary.CheckOuts)
	}
	if len(summary.Outstanding) != 1 || summary.Outstanding[0].ID != "B-2" {
		t.Fatalf("Outstanding = %#v, want B-2", summary.Outstanding)
	}
}

func TestLoad_MatchesLedgerOutstanding(t *testing.T) {
	l, err := ledger.Open(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	now := time.Now()
	for _, id := range []string{"A-1", "B-2", "C-3", "D-4"} {
		if err := l.AppendCheckIn(ledger.CheckIn{Name: "n", Phone: "p", BatterySize: "s", ID: id, Timestamp: now}); err != nil {
			t.Fatalf("AppendCheckIn: %v", err)
		}
	}
	for _, id := range []string{"C-3", "A-1", "Z-9"} {
		if err := l.AppendCheckOut(ledger.CheckOut{ID: id, Timestamp: now}); err != nil {
			t.Fatalf("AppendCheckOut: %v", err)
		}
	}

	summary, err := Load(l)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want, err := l.Outstanding()
	if err != nil {
		t.Fatalf("Outstanding: %v", err)
	}
	if len(summary.Outstanding) != len(want) {
		t.Fatalf("Load outstanding = %d, ledger says %d", len(summary.Outstanding), len(want))
	}
	for i := range want {
		if summary.Outstanding[i].ID != want[i].ID {
			t.Fatalf("Outstanding[%d] = %q, want %q", i, summary.Outstanding[i].ID, want[i].ID)
		}
	}
	if summary.CheckOuts != 3 {
		t.Fatalf("CheckOuts = %d, want 3 (unknown IDs still count)", summary.CheckOuts)
	}
}
