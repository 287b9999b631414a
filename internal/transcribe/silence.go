package transcribe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"wordcut/internal/project"
	"wordcut/internal/services"
)

// DetectSilences runs ffmpeg's silencedetect filter over the clip's audio and
// parses the reported intervals from stderr. Segment ids are positional
// ("s0", "s1", ...) and clip-local.
func (s *Service) DetectSilences(ctx context.Context, source string) ([]project.SilenceSegment, error) {
	filter := fmt.Sprintf("silencedetect=noise=%gdB:d=%g", s.cfg.SilenceNoiseDB, s.cfg.SilenceMinDuration)
	args := []string{
		"-hide_banner",
		"-nostats",
		"-i", source,
		"-af", filter,
		"-f", "null",
		"-",
	}
	output, err := s.run(ctx, s.ffmpegBinary, args...)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "silencedetect",
			strings.TrimSpace(string(output)), err)
	}
	return ParseSilences(string(output)), nil
}

// ParseSilences extracts silence segments from silencedetect log lines:
//
//	[silencedetect @ 0x...] silence_start: 1.2345
//	[silencedetect @ 0x...] silence_end: 2.5 | silence_duration: 1.2655
//
// A trailing silence_start without a matching silence_end (silence running to
// end of file) is dropped since its extent is unknown here.
func ParseSilences(output string) []project.SilenceSegment {
	var segments []project.SilenceSegment
	start := 0.0
	open := false
	for _, line := range strings.Split(output, "\n") {
		if idx := strings.Index(line, "silence_start:"); idx >= 0 {
			if value, ok := parseLeadingFloat(line[idx+len("silence_start:"):]); ok {
				start = value
				open = true
			}
			continue
		}
		if idx := strings.Index(line, "silence_end:"); idx >= 0 && open {
			value, ok := parseLeadingFloat(line[idx+len("silence_end:"):])
			if !ok || value <= start {
				open = false
				continue
			}
			segments = append(segments, project.SilenceSegment{
				ID:       fmt.Sprintf("s%d", len(segments)),
				Start:    start,
				End:      value,
				Duration: value - start,
			})
			open = false
		}
	}
	return segments
}

// parseLeadingFloat parses the first whitespace-delimited token as a float.
func parseLeadingFloat(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
