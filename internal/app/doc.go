// Package app wires configuration, preferences, logging, the ledger and the
// desk service together and starts either the TUI or hands the pieces to CLI
// commands through Open.
//
// The background poller rereads checkin.csv and checkout.csv so a desk sees
// tickets written by another terminal sharing the same data directory.
package app
