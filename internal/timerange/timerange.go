package timerange

import "sort"

// Range is a half-open [Start, End) interval in seconds.
type Range struct {
	Start float64
	End   float64
}

// Duration returns the span of the range, never negative.
func (r Range) Duration() float64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether t falls inside the half-open interval.
func (r Range) Contains(t float64) bool {
	return t >= r.Start && t < r.End
}

// Merge sorts the input by start and coalesces touching or overlapping ranges
// into a minimal, sorted, non-overlapping set. Zero-width ranges are dropped.
// The input slice is not modified.
func Merge(ranges []Range) []Range {
	filtered := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.End > r.Start {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Start == filtered[j].Start {
			return filtered[i].End < filtered[j].End
		}
		return filtered[i].Start < filtered[j].Start
	})

	merged := make([]Range, 0, len(filtered))
	current := filtered[0]
	for _, r := range filtered[1:] {
		if r.Start <= current.End {
			if r.End > current.End {
				current.End = r.End
			}
			continue
		}
		merged = append(merged, current)
		current = r
	}
	merged = append(merged, current)
	return merged
}

// Invert returns the complement of the given deleted ranges within [0, total]:
// the keep-ranges that survive deletion, sorted and clipped to the total span.
// The input must already be merged and sorted; Merge produces that shape.
// With no deletions the whole span is kept.
func Invert(deleted []Range, total float64) []Range {
	if total <= 0 {
		return nil
	}
	if len(deleted) == 0 {
		return []Range{{Start: 0, End: total}}
	}

	keep := make([]Range, 0, len(deleted)+1)
	cursor := 0.0
	for _, d := range deleted {
		if d.Start >= total {
			break
		}
		if d.Start > cursor {
			keep = append(keep, Range{Start: cursor, End: d.Start})
		}
		if d.End > cursor {
			cursor = d.End
		}
	}
	if cursor < total {
		keep = append(keep, Range{Start: cursor, End: total})
	}
	return keep
}

// Adjusted maps a timestamp on the original timeline to its position on the
// collapsed timeline by subtracting every deleted second that precedes it.
// deleted must be merged and sorted. Points inside a deleted range collapse
// onto the range's adjusted start, which keeps the mapping monotonic.
func Adjusted(t float64, deleted []Range) float64 {
	removed := 0.0
	for _, d := range deleted {
		if d.End <= t {
			removed += d.End - d.Start
			continue
		}
		if d.Start < t {
			removed += t - d.Start
		}
		break
	}
	adjusted := t - removed
	if adjusted < 0 {
		return 0
	}
	return adjusted
}

// TotalDuration sums the durations of the given ranges.
func TotalDuration(ranges []Range) float64 {
	total := 0.0
	for _, r := range ranges {
		total += r.Duration()
	}
	return total
}
