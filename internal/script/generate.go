package script

import (
	"sort"

	"wordcut/internal/project"
	"wordcut/internal/timeline"
)

// DefaultPauseThreshold is the minimum gap, in seconds, synthesized into a
// deletable pause item.
const DefaultPauseThreshold = 0.3

// TrackID names the generated script track.
const TrackID = "script"

// Options tunes generation. A zero or negative threshold falls back to the
// default; automated cutting lowers it for more aggressive pause removal.
type Options struct {
	PauseThreshold float64
}

func (o Options) threshold() float64 {
	if o.PauseThreshold > 0 {
		return o.PauseThreshold
	}
	return DefaultPauseThreshold
}

// Generate builds the script track on the original (pre-deletion) timeline:
// per clip an optional leading pause, the clip's words in order, inter-word
// pauses for gaps at or above the threshold, and an optional trailing pause.
// Clips without transcript data contribute nothing. The project is not
// mutated.
func Generate(p *project.Project, opts Options) timeline.Track {
	track := timeline.Track{ID: TrackID, Name: "Script"}
	if p == nil {
		return track
	}
	threshold := opts.threshold()

	for clipIndex, clip := range p.Clips {
		if len(clip.Words) == 0 {
			continue
		}
		clipStart := p.ClipStart(clipIndex)
		clipEnd := clipStart + clip.Duration

		words := make([]project.Word, len(clip.Words))
		copy(words, clip.Words)
		sort.SliceStable(words, func(i, j int) bool { return words[i].Start < words[j].Start })

		for i := range words {
			words[i].ClipIndex = clipIndex
			words[i].Start += clipStart
			words[i].End += clipStart
		}

		first := words[0]
		if first.Start-clipStart >= threshold {
			track.Items = append(track.Items, pauseItem(
				project.LeadingPauseID(clipIndex),
				clipStart, first.Start, clipIndex, "leading",
				project.LeadingPauseDeleted(p.DeletedPauseIDs, clipIndex),
			))
		}

		for i, w := range words {
			track.Items = append(track.Items, timeline.Item{
				ID:      w.ID,
				TrackID: TrackID,
				Start:   w.Start,
				End:     w.End,
				Type:    timeline.TypeScript,
				Label:   w.Text,
				Data: timeline.ItemData{
					WordID:    w.ID,
					ClipIndex: clipIndex,
					Deleted:   p.DeletedWordIDs.Has(w.ID),
				},
			})

			if i+1 < len(words) {
				next := words[i+1]
				if next.Start-w.End >= threshold {
					track.Items = append(track.Items, pauseItem(
						project.PauseAfterID(w.ID),
						w.End, next.Start, clipIndex, "",
						project.InterWordPauseDeleted(p.DeletedPauseIDs, clipIndex, w, next),
					))
				}
			}
		}

		last := words[len(words)-1]
		if clipEnd-last.End >= threshold {
			track.Items = append(track.Items, pauseItem(
				project.PauseAfterID(last.ID),
				last.End, clipEnd, clipIndex, "trailing",
				project.TrailingPauseDeleted(p.DeletedPauseIDs, last),
			))
		}
	}

	return track
}

func pauseItem(id string, start, end float64, clipIndex int, boundary string, deleted bool) timeline.Item {
	return timeline.Item{
		ID:      id,
		TrackID: TrackID,
		Start:   start,
		End:     end,
		Type:    timeline.TypePause,
		Label:   "pause",
		Data: timeline.ItemData{
			ClipIndex: clipIndex,
			Boundary:  boundary,
			Deleted:   deleted,
		},
	}
}
