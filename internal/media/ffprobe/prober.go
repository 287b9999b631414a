package ffprobe

import (
	"context"
	"fmt"
)

// DurationProber resolves clip durations with ffprobe. It satisfies the API
// server's prober dependency.
type DurationProber struct {
	Binary string
}

// Duration returns the container duration of path in seconds.
func (p DurationProber) Duration(ctx context.Context, path string) (float64, error) {
	result, err := Inspect(ctx, p.Binary, path)
	if err != nil {
		return 0, err
	}
	seconds := result.DurationSeconds()
	if seconds <= 0 {
		return 0, fmt.Errorf("ffprobe: no duration reported for %s", path)
	}
	return seconds, nil
}
