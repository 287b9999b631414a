// Package transcribe turns uploaded clips into word-level transcripts.
//
// WhisperX (run through uvx) produces word timestamps from a mono 16 kHz
// WAV extraction of the clip; ffmpeg's silencedetect filter supplies the
// clip's silence segments. Clips are processed sequentially and a failing
// clip records its error without stopping the rest.
//
// Key types:
//   - Service: configured transcription runner with injectable command
//     execution for tests
//   - ClipResult: words and silences for one clip, or the error that
//     prevented them
package transcribe
