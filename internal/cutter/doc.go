// Package cutter realizes keep-ranges as an actual media file: each surviving
// range is extracted losslessly with ffmpeg stream copy, and multiple segments
// are joined with the concat demuxer, also without re-encoding.
//
// Every invocation works in its own scratch directory and removes it on every
// exit path. Extraction and concatenation are all-or-nothing; a failed export
// leaves no partial output behind.
package cutter
