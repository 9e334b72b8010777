// Command dropoff runs the battery drop-off desk.
//
// With no arguments on a terminal it opens the full-screen desk. The
// subcommands perform the same operations for scripts and barcode-scanner
// wedges:
//
//	dropoff checkin --name "Jane Doe" --phone 555-0100 --size "Group 24"
//	dropoff checkout "Group 24-JD-3456"
//	dropoff open
//	dropoff export checkin ~/reports/checkin.csv
//	dropoff settings pickup-hours 48
package main
