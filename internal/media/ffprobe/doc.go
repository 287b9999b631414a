// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Uploaded clips are probed once at registration time; the resulting
// duration, dimensions, and frame rate seed the project's clip metadata.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
package ffprobe
