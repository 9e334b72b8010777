// Package config handles loading the drop-off desk configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/dropoff/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Data directory: ~/.local/share/dropoff (checkin.csv, checkout.csv, dropoff.log)
//   - Receipts directory: <data_dir>/receipts
//   - Shop name: AABCMS
//   - Pickup window: 24 hours
//   - Battery sizes: Group 24 through Group 94R, plus "Other"
//
// # TOML Format
//
//	data_dir = "~/.local/share/dropoff"
//	receipts_dir = "~/receipts"
//	shop_name = "AABCMS"
//	pickup_hours = 24
//	battery_sizes = ["Group 24", "Group 27", "AA"]
//	log_level = "info"
//	log_format = "console"
//
// A custom battery_sizes list always gets "Other" appended so a clerk can
// type a size that is not on the list.
package config
