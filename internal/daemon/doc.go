// Package daemon owns the long-running process: it takes the single-instance
// lock, opens the store, recovers interrupted export jobs, and runs the HTTP
// API and the export worker until shutdown.
package daemon
