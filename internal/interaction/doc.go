// Package interaction implements the pointer-driven drag/resize state machine
// for timeline items: ghost placement, snapping, per-track overlap validation,
// video clip reordering, and commit-on-release semantics.
//
// The engine is single-session: one gesture at a time, with the session state
// reset unconditionally on release so no gesture can leave the timeline
// stuck mid-drag. Pointer samples are coalesced to frame cadence — between
// ticks only the latest sample survives.
package interaction
