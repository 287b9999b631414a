// Package project holds the editing session model: ordered clips with their
// transcripts and silence segments, plus the deletion sets that are the single
// source of truth for what is cut.
//
// Deletion membership is tracked by string id. Several generations of id
// formats exist for pauses and silences; ParseDeletionID normalizes them into
// a tagged Deletion value, while the raw string forms remain accepted at every
// boundary so persisted projects keep loading. Derived views (collapsed
// preview, export keep-ranges) never mutate these sets.
package project
