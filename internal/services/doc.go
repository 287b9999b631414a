// Package services defines shared plumbing for the pieces of wordcut that
// talk to external tools and long-running jobs.
//
// Key responsibilities:
//   - Context helpers that stamp project, clip, and export-job identifiers so
//     log lines can always be attributed.
//   - Structured error markers plus the Wrap helper that classify failures
//     from transcription, probing, and cutting consistently.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform.
package services
