// Package agent implements the device-side drive reporter.
//
// It scans the local mount table for real storage volumes, keeps a stable
// client identity and the last-reported drive set in a local sqlite
// database, and reports the current state to the server. The agent is a
// one-shot command: one run performs one scan-and-report cycle.
package agent
