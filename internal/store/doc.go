// Package store persists projects and export jobs in SQLite.
//
// Projects are stored as JSON documents keyed by id; export jobs carry a
// status lifecycle (pending -> exporting -> completed|failed) with progress
// columns the API surfaces to polling clients.
//
// Key types:
//   - Store: database handle with schema management
//   - Job: export job row with status and progress
//
// The database lives under the configured log directory and uses WAL mode
// with a busy timeout so the daemon and CLI can share it.
package store
