// Package timeline defines the track and item model shared by the script
// generator, the collapsed-preview builder, and the interaction engine.
//
// Tracks are independent lanes of non-overlapping items. Items carry times in
// seconds; frame conversion and grid snapping helpers live here so every
// consumer rounds the same way.
package timeline
