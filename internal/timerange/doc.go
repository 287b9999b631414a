// Package timerange implements the interval arithmetic shared by the
// collapsed-preview builder and the export cutter.
//
// Ranges use a half-open [start, end) convention measured in seconds on the
// original (pre-deletion) timeline. The three operations — Merge, Invert, and
// Adjusted — are pure and deterministic so that the preview timeline and the
// physically cut media always agree on what survives deletion.
package timerange
