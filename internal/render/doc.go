// Package render orchestrates export jobs.
//
// An export resolves the project's deletion sets into keep-ranges through the
// same path the collapsed preview uses, cuts each clip losslessly, joins the
// parts, and records progress on the job row so polling clients can follow
// along. Failures mark the job failed and leave no partial output.
//
// Key types:
//   - Renderer: executes one export job end to end
//   - Worker: polls the store for pending jobs and runs them sequentially
package render
