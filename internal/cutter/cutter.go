package cutter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"wordcut/internal/fileutil"
	"wordcut/internal/timerange"
)

// FFmpegCommand is the default ffmpeg binary name.
const FFmpegCommand = "ffmpeg"

// Cutter extracts and concatenates media segments with ffmpeg.
type Cutter struct {
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// New creates a cutter using the given ffmpeg binary, or the default when
// empty.
func New(ffmpegBinary string) *Cutter {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = FFmpegCommand
	}
	return &Cutter{ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Cutter) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	c.commandRunner = runner
}

// Cut extracts every keep-range from source and writes the joined result to
// dest. Ranges must be sorted and non-overlapping with positive duration; the
// Invert output has that shape. The output duration equals the sum of the
// range durations within container rounding.
func (c *Cutter) Cut(ctx context.Context, source string, keep []timerange.Range, dest string) error {
	if strings.TrimSpace(source) == "" {
		return errors.New("cut: source path required")
	}
	if strings.TrimSpace(dest) == "" {
		return errors.New("cut: dest path required")
	}
	ranges := make([]timerange.Range, 0, len(keep))
	for _, r := range keep {
		if r.Duration() > 0 {
			ranges = append(ranges, r)
		}
	}
	if len(ranges) == 0 {
		return errors.New("cut: no keep-ranges to export")
	}

	if len(ranges) == 1 {
		// The single extracted segment is the output.
		if err := c.extract(ctx, source, ranges[0], dest); err != nil {
			c.discard(dest)
			return err
		}
		return nil
	}

	scratch, err := os.MkdirTemp("", "wordcut-cut-")
	if err != nil {
		return fmt.Errorf("cut: create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	ext := filepath.Ext(source)
	segments := make([]string, 0, len(ranges))
	for i, r := range ranges {
		segment := filepath.Join(scratch, fmt.Sprintf("segment_%03d%s", i, ext))
		if err := c.extract(ctx, source, r, segment); err != nil {
			return err
		}
		segments = append(segments, segment)
	}

	listPath := filepath.Join(scratch, "concat.txt")
	if err := writeConcatList(listPath, segments); err != nil {
		return err
	}
	if err := c.concat(ctx, listPath, dest); err != nil {
		c.discard(dest)
		return err
	}
	return nil
}

// Join concatenates already-cut files into dest with the concat demuxer.
// Sources must share codec parameters, which holds for segments stream-copied
// from clips recorded with the same settings.
func (c *Cutter) Join(ctx context.Context, sources []string, dest string) error {
	if len(sources) == 0 {
		return errors.New("join: no sources")
	}
	if strings.TrimSpace(dest) == "" {
		return errors.New("join: dest path required")
	}
	if len(sources) == 1 {
		if err := fileutil.CopyFileVerified(sources[0], dest); err != nil {
			return fmt.Errorf("join: %w", err)
		}
		return nil
	}

	scratch, err := os.MkdirTemp("", "wordcut-join-")
	if err != nil {
		return fmt.Errorf("join: create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	listPath := filepath.Join(scratch, "concat.txt")
	if err := writeConcatList(listPath, sources); err != nil {
		return err
	}
	if err := c.concat(ctx, listPath, dest); err != nil {
		c.discard(dest)
		return err
	}
	return nil
}

// extract stream-copies one range. -ss before -i gives fast precise seeking
// and -avoid_negative_ts make_zero rebases timestamps so segments butt
// together without discontinuities.
func (c *Cutter) extract(ctx context.Context, source string, r timerange.Range, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatSeconds(r.Start),
		"-t", formatSeconds(r.Duration()),
		"-i", source,
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		dest,
	}
	if err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("cut: extract [%s, %s): %w", formatSeconds(r.Start), formatSeconds(r.End), err)
	}
	return nil
}

func (c *Cutter) concat(ctx context.Context, listPath, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		dest,
	}
	if err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("cut: concat: %w", err)
	}
	return nil
}

func (c *Cutter) run(ctx context.Context, args ...string) error {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, c.ffmpegBinary, args...)
	}
	cmd := exec.CommandContext(ctx, c.ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", c.ffmpegBinary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (c *Cutter) discard(dest string) {
	if _, err := os.Stat(dest); err == nil {
		_ = os.Remove(dest)
	}
}

func writeConcatList(path string, segments []string) error {
	var b strings.Builder
	for _, segment := range segments {
		// concat demuxer single-quote escaping
		escaped := strings.ReplaceAll(segment, "'", `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", escaped)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("cut: write concat list: %w", err)
	}
	return nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
