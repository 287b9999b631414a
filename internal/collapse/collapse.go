package collapse

import (
	"fmt"

	"wordcut/internal/project"
	"wordcut/internal/script"
	"wordcut/internal/timeline"
	"wordcut/internal/timerange"
)

// VideoTrackID names the collapsed video track.
const VideoTrackID = "video"

// Result is the collapsed projection of a project.
type Result struct {
	VideoTrack    timeline.Track
	ScriptTrack   timeline.Track
	TotalDuration float64
	DeletedRanges []timerange.Range
}

// DeletedRanges gathers every deleted time range in global original time:
// deleted words, deleted silence segments, and deleted pauses (both id
// generations), merged into a minimal set. Stale ids match nothing and are
// silently ignored.
func DeletedRanges(p *project.Project, opts script.Options) []timerange.Range {
	if p == nil {
		return nil
	}
	var ranges []timerange.Range

	// Word and pause ranges fall out of the script track, which already
	// resolves deletion membership for both pause id generations. Using the
	// same generator keeps preview and export agreement by construction.
	scriptTrack := script.Generate(p, opts)
	for _, it := range scriptTrack.Items {
		if it.Data.Deleted {
			ranges = append(ranges, timerange.Range{Start: it.Start, End: it.End})
		}
	}

	for clipIndex, clip := range p.Clips {
		offset := p.ClipStart(clipIndex)
		for _, seg := range clip.SilenceSegments {
			id := project.SilenceID(clipIndex, seg.ID)
			if p.DeletedSegments.Has(id) || p.DeletedPauseIDs.Has(id) {
				ranges = append(ranges, timerange.Range{Start: offset + seg.Start, End: offset + seg.End})
			}
		}
	}

	return timerange.Merge(ranges)
}

// Build computes the collapsed preview timeline for the project.
func Build(p *project.Project, opts script.Options) Result {
	result := Result{
		VideoTrack:  timeline.Track{ID: VideoTrackID, Name: "Video"},
		ScriptTrack: timeline.Track{ID: script.TrackID, Name: "Script"},
	}
	if p == nil || len(p.Clips) == 0 {
		return result
	}

	deleted := DeletedRanges(p, opts)
	keep := timerange.Invert(deleted, p.TotalDuration())

	cursor := 0.0
	for i, r := range keep {
		duration := r.Duration()
		clipIndex := p.ClipIndexAt(r.Start)
		label := ""
		if clipIndex >= 0 && clipIndex < len(p.Clips) {
			label = p.Clips[clipIndex].Title
		}
		result.VideoTrack.Items = append(result.VideoTrack.Items, timeline.Item{
			ID:      fmt.Sprintf("%s-%d", VideoTrackID, i),
			TrackID: VideoTrackID,
			Start:   cursor,
			End:     cursor + duration,
			Type:    timeline.TypeVideo,
			Label:   label,
			Data: timeline.ItemData{
				OriginalStart: r.Start,
				OriginalEnd:   r.End,
				ClipIndex:     clipIndex,
			},
		})
		cursor += duration
	}
	result.TotalDuration = cursor
	result.DeletedRanges = deleted

	for _, w := range p.GlobalWords() {
		if p.DeletedWordIDs.Has(w.ID) {
			continue
		}
		start := timerange.Adjusted(w.Start, deleted)
		end := timerange.Adjusted(w.End, deleted)
		if end <= start {
			// Word swallowed by an overlapping deletion (e.g. a silence
			// segment spanning it); nothing to show.
			continue
		}
		result.ScriptTrack.Items = append(result.ScriptTrack.Items, timeline.Item{
			ID:      w.ID,
			TrackID: script.TrackID,
			Start:   start,
			End:     end,
			Type:    timeline.TypeScript,
			Label:   w.Text,
			Data: timeline.ItemData{
				WordID:        w.ID,
				ClipIndex:     w.ClipIndex,
				OriginalStart: w.Start,
				OriginalEnd:   w.End,
			},
		})
	}

	return result
}

// KeepRanges returns the surviving original-time ranges for export.
func KeepRanges(p *project.Project, opts script.Options) []timerange.Range {
	if p == nil {
		return nil
	}
	return timerange.Invert(DeletedRanges(p, opts), p.TotalDuration())
}
