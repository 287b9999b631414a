// Package collapse projects a project's deletion sets into the gapless
// preview timeline: merged deleted ranges, the keep-ranges that survive, a
// collapsed video track that remembers where each piece came from, and a
// script track re-timed onto the collapsed clock.
//
// The projection is pure. Export consumes the same keep-ranges, so what the
// preview shows is exactly what the cutter produces.
package collapse
