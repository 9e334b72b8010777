package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/dropoff/internal/ledger"
)

// Summary is one read of the ledger.
type Summary struct {
	Outstanding []ledger.CheckIn
	CheckIns    int
	CheckOuts   int
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Summary
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive read failures
}

// IsStale returns true when the ledger has failed to load repeatedly.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(summary *Summary, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if summary != nil {
		s.snapshot.Summary = Summary{
			Outstanding: cloneCheckIns(summary.Outstanding),
			CheckIns:    summary.CheckIns,
			CheckOuts:   summary.CheckOuts,
		}
		s.snapshot.HasData = true
	} else {
		s.snapshot.Summary = Summary{}
		s.snapshot.HasData = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Outstanding = cloneCheckIns(s.snapshot.Outstanding)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Load reads the ledger into a Summary.
func Load(l *ledger.Ledger) (*Summary, error) {
	ins, err := l.CheckIns()
	if err != nil {
		return nil, err
	}
	outs, err := l.CheckOuts()
	if err != nil {
		return nil, err
	}
	return &Summary{Outstanding: ledger.OutstandingOf(ins, outs), CheckIns: len(ins), CheckOuts: len(outs)}, nil
}

func cloneCheckIns(items []ledger.CheckIn) []ledger.CheckIn {
	if len(items) == 0 {
		return nil
	}
	dup := make([]ledger.CheckIn, len(items))
	copy(dup, items)
	return dup
}
