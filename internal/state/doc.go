// Package state holds the thread-safe snapshot of ledger totals and open
// tickets that the background poller writes and the UI reads.
//
// Update with a nil error replaces the data and clears failure counters.
// Update with an error keeps the previous data so the screen keeps showing
// the last good read while the error is surfaced in the header.
package state
