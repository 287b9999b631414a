// Package logging assembles the structured slog loggers used across wordcut.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code automatically
// tags log lines with project, clip, and export-job identifiers. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
