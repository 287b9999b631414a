package project

import (
	"time"

	"wordcut/internal/timeline"
)

// Word is a transcribed word with times local to its owning clip. Words are
// created by transcription and never mutated; deletion is membership of the
// word id in the project's DeletedWordIDs set.
type Word struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	ClipIndex int     `json:"clipIndex"`
}

// SilenceSegment is a detector-reported quiet interval, clip-local times.
type SilenceSegment struct {
	ID       string  `json:"id"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// Clip is one uploaded media unit. Immutable once transcribed except for the
// append of transcript data.
type Clip struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SourcePath      string           `json:"sourcePath"`
	Duration        float64          `json:"duration"`
	Words           []Word           `json:"words,omitempty"`
	SilenceSegments []SilenceSegment `json:"silenceSegments,omitempty"`
}

// Project is an editing session: ordered clips, deletion sets, and overlay
// items (text/sticker) the user has arranged.
type Project struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Clips           []Clip          `json:"clips"`
	DeletedWordIDs  StringSet       `json:"deletedWordIds"`
	DeletedPauseIDs StringSet       `json:"deletedPauseIds"`
	DeletedSegments StringSet       `json:"deletedSegments"`
	Overlays        []timeline.Item `json:"overlays,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// New returns an empty project with initialized deletion sets.
func New(id, name string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:              id,
		Name:            name,
		DeletedWordIDs:  NewStringSet(),
		DeletedPauseIDs: NewStringSet(),
		DeletedSegments: NewStringSet(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// EnsureSets initializes any nil deletion set, for projects decoded from JSON.
func (p *Project) EnsureSets() {
	if p.DeletedWordIDs == nil {
		p.DeletedWordIDs = NewStringSet()
	}
	if p.DeletedPauseIDs == nil {
		p.DeletedPauseIDs = NewStringSet()
	}
	if p.DeletedSegments == nil {
		p.DeletedSegments = NewStringSet()
	}
}

// ClipStart returns the clip's global start time: the sum of the durations of
// every preceding clip.
func (p *Project) ClipStart(index int) float64 {
	start := 0.0
	for i := 0; i < index && i < len(p.Clips); i++ {
		start += p.Clips[i].Duration
	}
	return start
}

// TotalDuration is the original (pre-deletion) length of the whole timeline.
func (p *Project) TotalDuration() float64 {
	total := 0.0
	for _, c := range p.Clips {
		total += c.Duration
	}
	return total
}

// ClipIndexAt locates the clip whose global span contains t. Returns the last
// clip for t at or past the end so callers always get a valid index when any
// clips exist, or -1 with no clips.
func (p *Project) ClipIndexAt(t float64) int {
	if len(p.Clips) == 0 {
		return -1
	}
	cursor := 0.0
	for i, c := range p.Clips {
		cursor += c.Duration
		if t < cursor {
			return i
		}
	}
	return len(p.Clips) - 1
}

// GlobalWords flattens every clip's words onto the global timeline, ordered by
// clip then start time. ClipIndex is stamped on each word.
func (p *Project) GlobalWords() []Word {
	var out []Word
	for i, c := range p.Clips {
		offset := p.ClipStart(i)
		for _, w := range c.Words {
			w.ClipIndex = i
			w.Start += offset
			w.End += offset
			out = append(out, w)
		}
	}
	return out
}

// ReorderClips moves the clip at from to position to, shifting the rest.
// Out-of-range indices are clamped; a no-op move returns false.
func (p *Project) ReorderClips(from, to int) bool {
	n := len(p.Clips)
	if n == 0 {
		return false
	}
	if from < 0 || from >= n {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to >= n {
		to = n - 1
	}
	if from == to {
		return false
	}
	clip := p.Clips[from]
	rest := append(append([]Clip{}, p.Clips[:from]...), p.Clips[from+1:]...)
	p.Clips = append(append(append([]Clip{}, rest[:to]...), clip), rest[to:]...)
	return true
}
