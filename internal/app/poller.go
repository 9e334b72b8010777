package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/dropoff/internal/ledger"
	"github.com/five82/dropoff/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that rereads the ledger at a
// fixed cadence, backing off while reads keep failing. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, l *ledger.Ledger, logger *slog.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if err := Refresh(store, l); err != nil {
				logger.Warn("ledger poll failed", "error", err)
			}
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// Refresh reads the ledger once and records the result in store.
func Refresh(store *state.Store, l *ledger.Ledger) error {
	summary, err := state.Load(l)
	if err != nil {
		store.Update(nil, err)
		return err
	}
	store.Update(summary, nil)
	return nil
}

// calculateBackoff doubles the interval per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
