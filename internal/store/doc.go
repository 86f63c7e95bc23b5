// Package store manages pipeline persistence backed by SQLite.
//
// The database holds the discovery backlog (video IDs awaiting metadata),
// the full video metadata tables, correlated schedule events, and the record
// of downloaded audio files. All writes are idempotent upserts keyed on
// natural identifiers, so every pipeline can be re-run safely.
package store
