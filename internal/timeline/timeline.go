package timeline

import "math"

// ItemType classifies what a timeline item represents.
type ItemType string

const (
	TypeVideo   ItemType = "video"
	TypeScript  ItemType = "script"
	TypePause   ItemType = "pause"
	TypeText    ItemType = "text"
	TypeSticker ItemType = "sticker"
)

// DefaultFPS is the frame rate assumed for frame/time conversion when the
// source container does not report one.
const DefaultFPS = 30.0

// SnapGrid is the default drag/resize snap resolution in seconds.
const SnapGrid = 0.1

// MinItemDuration is the floor a resize gesture may not shrink an item below.
const MinItemDuration = 0.1

// ItemData carries per-item payload that varies by type. For collapsed video
// items OriginalStart/OriginalEnd point back into the source timeline and
// ClipIndex names the owning clip; word items reference their word id.
type ItemData struct {
	OriginalStart float64 `json:"originalStart,omitempty"`
	OriginalEnd   float64 `json:"originalEnd,omitempty"`
	ClipIndex     int     `json:"clipIndex,omitempty"`
	WordID        string  `json:"wordId,omitempty"`
	Deleted       bool    `json:"deleted,omitempty"`
	Boundary      string  `json:"boundary,omitempty"` // "leading" or "trailing" for clip-edge pauses
	Text          string  `json:"text,omitempty"`
}

// Item is one element on a track. Start/End are seconds on whatever timeline
// the owning track lives on (original or collapsed).
type Item struct {
	ID      string   `json:"id"`
	TrackID string   `json:"trackId"`
	Start   float64  `json:"start"`
	End     float64  `json:"end"`
	Type    ItemType `json:"type"`
	Label   string   `json:"label"`
	Data    ItemData `json:"data"`
}

// Duration returns the item's span, never negative.
func (it Item) Duration() float64 {
	if it.End <= it.Start {
		return 0
	}
	return it.End - it.Start
}

// Locked reports whether the item is exempt from drag and resize. Script and
// pause items are generated from the transcript and may only be selected or
// deleted; moving them would desynchronize them from the words they mirror.
func (it Item) Locked() bool {
	return it.Type == TypeScript || it.Type == TypePause
}

// Track is an independent lane of items.
type Track struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// ItemByID returns the index of the item with the given id, or -1.
func (t *Track) ItemByID(id string) int {
	for i := range t.Items {
		if t.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Overlaps reports whether placing [start, end) on the track would collide
// with any item other than the one identified by excludeID.
func (t *Track) Overlaps(start, end float64, excludeID string) bool {
	for i := range t.Items {
		it := &t.Items[i]
		if it.ID == excludeID {
			continue
		}
		if start < it.End && end > it.Start {
			return true
		}
	}
	return false
}

// Gaps returns the unoccupied intervals of the track within [0, total].
// Items are not assumed sorted.
func (t *Track) Gaps(total float64) []struct{ Start, End float64 } {
	occupied := make([]struct{ Start, End float64 }, 0, len(t.Items))
	for _, it := range t.Items {
		if it.End > it.Start {
			occupied = append(occupied, struct{ Start, End float64 }{it.Start, it.End})
		}
	}
	// insertion sort; track item counts are small
	for i := 1; i < len(occupied); i++ {
		for j := i; j > 0 && occupied[j].Start < occupied[j-1].Start; j-- {
			occupied[j], occupied[j-1] = occupied[j-1], occupied[j]
		}
	}

	gaps := make([]struct{ Start, End float64 }, 0, len(occupied)+1)
	cursor := 0.0
	for _, o := range occupied {
		if o.Start > cursor {
			gaps = append(gaps, struct{ Start, End float64 }{cursor, o.Start})
		}
		if o.End > cursor {
			cursor = o.End
		}
	}
	if cursor < total {
		gaps = append(gaps, struct{ Start, End float64 }{cursor, total})
	}
	return gaps
}

// Snap rounds t to the given grid. A non-positive grid disables snapping.
func Snap(t, grid float64) float64 {
	if grid <= 0 {
		return t
	}
	return math.Round(t/grid) * grid
}

// TimeToFrame converts seconds to a frame number at the given rate.
func TimeToFrame(t, fps float64) int {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return int(math.Round(t * fps))
}

// FrameToTime converts a frame number to seconds at the given rate.
func FrameToTime(frame int, fps float64) float64 {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return float64(frame) / fps
}
