package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wordcut/internal/config"
	"wordcut/internal/cutter"
	"wordcut/internal/timerange"
)

func newCutCommand(ctx *commandContext) *cobra.Command {
	var keepSpecs []string

	cmd := &cobra.Command{
		Use:   "cut <source> <dest>",
		Short: "Cut keep-ranges out of a media file without re-encoding",
		Long: "Extracts the given time ranges from the source with ffmpeg stream " +
			"copy and joins them into dest. Ranges use start-end in seconds, " +
			"for example --keep 1.5-3.2 --keep 10-12.25.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			dest, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}

			keep, err := parseKeepRanges(keepSpecs)
			if err != nil {
				return err
			}
			if len(keep) == 0 {
				return fmt.Errorf("at least one --keep range is required")
			}

			cut := cutter.New(cfg.Media.FFmpegBinary)
			if err := cut.Cut(cmd.Context(), source, keep, dest); err != nil {
				return err
			}
			total := timerange.TotalDuration(keep)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%.2fs from %d range(s))\n", dest, total, len(keep))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&keepSpecs, "keep", nil, "Time range to keep, start-end in seconds (repeatable)")
	return cmd
}

// parseKeepRanges parses "start-end" specs, also accepting comma-separated
// lists inside a single flag value. Ranges are merged and sorted.
func parseKeepRanges(specs []string) ([]timerange.Range, error) {
	var ranges []timerange.Range
	for _, spec := range specs {
		for _, part := range strings.Split(spec, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sep := strings.LastIndex(part, "-")
			if sep <= 0 {
				return nil, fmt.Errorf("invalid range %q, expected start-end", part)
			}
			start, err := strconv.ParseFloat(strings.TrimSpace(part[:sep]), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid range start in %q: %w", part, err)
			}
			end, err := strconv.ParseFloat(strings.TrimSpace(part[sep+1:]), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid range end in %q: %w", part, err)
			}
			if end <= start {
				return nil, fmt.Errorf("range %q is empty or reversed", part)
			}
			ranges = append(ranges, timerange.Range{Start: start, End: end})
		}
	}
	return timerange.Merge(ranges), nil
}
