package interaction

import (
	"math"

	"wordcut/internal/timeline"
	"wordcut/internal/timerange"
)

// DefaultTrackHeight is the fixed per-track lane height in pixels used to map
// vertical pointer travel onto track-index deltas.
const DefaultTrackHeight = 64.0

// Config holds the geometry the engine needs to convert pixels to time.
type Config struct {
	TrackHeight     float64
	SnapGrid        float64
	MinDuration     float64
	VisibleWidth    float64 // pixel width of the visible timeline
	VisibleDuration float64 // seconds spanned by the visible timeline
}

func (c Config) normalized() Config {
	if c.TrackHeight <= 0 {
		c.TrackHeight = DefaultTrackHeight
	}
	if c.SnapGrid <= 0 {
		c.SnapGrid = timeline.SnapGrid
	}
	if c.MinDuration <= 0 {
		c.MinDuration = timeline.MinItemDuration
	}
	return c
}

// Callbacks are the track mutations the engine invokes on a valid commit.
// The engine never mutates tracks itself.
type Callbacks struct {
	Move        func(itemID string, newStart, newEnd float64, trackID string)
	Resize      func(itemID string, newStart, newEnd float64)
	ReorderClip func(from, to int)
}

// Engine drives one drag session at a time over the provided tracks.
type Engine struct {
	cfg       Config
	tracks    func() []timeline.Track
	clipSpans func() []timerange.Range
	cb        Callbacks

	session Session
}

// NewEngine builds an engine over the given track provider. clipSpans supplies
// the global span of each clip for video reordering and may be nil when the
// timeline carries no video track.
func NewEngine(cfg Config, tracks func() []timeline.Track, clipSpans func() []timerange.Range, cb Callbacks) *Engine {
	return &Engine{cfg: cfg.normalized(), tracks: tracks, clipSpans: clipSpans, cb: cb}
}

// SetViewport updates the pixel/time mapping as the zoom engine changes it.
func (e *Engine) SetViewport(visibleWidth, visibleDuration float64) {
	e.cfg.VisibleWidth = visibleWidth
	e.cfg.VisibleDuration = visibleDuration
}

// Session exposes the current drag state for rendering the ghost.
func (e *Engine) Session() Session {
	return e.session
}

// Start begins a gesture on the identified item. Script and pause items are
// selectable only and reject drag-start. Any previous session is discarded
// first, so a missed release can never wedge the engine.
func (e *Engine) Start(gesture Gesture, trackIndex int, itemID string, s Sample) bool {
	e.session.Reset()

	tracks := e.tracks()
	if trackIndex < 0 || trackIndex >= len(tracks) {
		return false
	}
	track := &tracks[trackIndex]
	idx := track.ItemByID(itemID)
	if idx < 0 {
		return false
	}
	item := track.Items[idx]
	if item.Locked() {
		return false
	}

	e.session = Session{
		Active:  true,
		Gesture: gesture,
		origin: snapshot{
			itemID:     itemID,
			start:      item.Start,
			duration:   item.Duration(),
			trackIndex: trackIndex,
			isVideo:    item.Type == timeline.TypeVideo,
			clipIndex:  item.Data.ClipIndex,
		},
		startX: s.ClientX,
		startY: s.ClientY,
	}
	e.session.Ghost = Ghost{
		Start:      item.Start,
		End:        item.End,
		TrackIndex: trackIndex,
		Valid:      true,
	}
	e.session.InsertIndex = item.Data.ClipIndex
	return true
}

// Update records a pointer sample. Samples are coalesced: only the latest one
// is applied on the next Tick, matching animation-frame throttling.
func (e *Engine) Update(s Sample) {
	if !e.session.Active {
		return
	}
	sample := s
	e.session.pending = &sample
}

// Tick applies the pending pointer sample, if any, recomputing the ghost.
// Call once per animation frame.
func (e *Engine) Tick() {
	if !e.session.Active || e.session.pending == nil {
		return
	}
	sample := *e.session.pending
	e.session.pending = nil
	e.applySample(sample)
}

// End finishes the gesture with a final sample, committing the last valid
// placement through the callbacks. Session state is cleared regardless of
// validity or gesture outcome.
func (e *Engine) End(s Sample) {
	if !e.session.Active {
		return
	}
	e.applySample(s)
	session := e.session
	e.session.Reset()

	if !session.Ghost.Valid {
		return
	}

	ghost := session.Ghost
	origin := session.origin
	switch session.Gesture {
	case GestureMove:
		if origin.isVideo {
			if e.cb.ReorderClip != nil && session.InsertIndex != origin.clipIndex {
				e.cb.ReorderClip(origin.clipIndex, session.InsertIndex)
			}
			return
		}
		if e.cb.Move != nil {
			trackID := ""
			tracks := e.tracks()
			if ghost.TrackIndex >= 0 && ghost.TrackIndex < len(tracks) {
				trackID = tracks[ghost.TrackIndex].ID
			}
			e.cb.Move(origin.itemID, ghost.Start, ghost.End, trackID)
		}
	case GestureResizeStart, GestureResizeEnd:
		if e.cb.Resize != nil {
			e.cb.Resize(origin.itemID, ghost.Start, ghost.End)
		}
	}
}

// Cancel abandons the gesture without committing.
func (e *Engine) Cancel() {
	e.session.Reset()
}

func (e *Engine) applySample(s Sample) {
	origin := e.session.origin
	deltaTime := 0.0
	if e.cfg.VisibleWidth > 0 && e.cfg.VisibleDuration > 0 {
		deltaTime = (s.ClientX - e.session.startX) / e.cfg.VisibleWidth * e.cfg.VisibleDuration
	}

	ghost := Ghost{TrackIndex: origin.trackIndex}
	switch e.session.Gesture {
	case GestureMove:
		start := timeline.Snap(origin.start+deltaTime, e.cfg.SnapGrid)
		if start < 0 {
			start = 0
		}
		ghost.Start = start
		ghost.End = start + origin.duration
		ghost.TrackIndex = e.targetTrack(origin.trackIndex, s.ClientY)
	case GestureResizeStart:
		end := origin.start + origin.duration
		start := timeline.Snap(origin.start+deltaTime, e.cfg.SnapGrid)
		duration := end - start
		if duration < e.cfg.MinDuration {
			duration = e.cfg.MinDuration
		}
		ghost.Start = end - duration
		ghost.End = end
	case GestureResizeEnd:
		duration := timeline.Snap(origin.duration+deltaTime, e.cfg.SnapGrid)
		if duration < e.cfg.MinDuration {
			duration = e.cfg.MinDuration
		}
		ghost.Start = origin.start
		ghost.End = origin.start + duration
	}

	ghost.Valid = e.validate(ghost)
	e.session.Ghost = ghost

	if origin.isVideo && e.session.Gesture == GestureMove {
		e.session.InsertIndex = e.insertionIndex(ghost.Start)
	}
}

func (e *Engine) targetTrack(originIndex int, clientY float64) int {
	deltaTracks := int(math.Round((clientY - e.session.startY) / e.cfg.TrackHeight))
	target := originIndex + deltaTracks
	count := len(e.tracks())
	if target < 0 {
		target = 0
	}
	if target >= count {
		target = count - 1
	}
	return target
}

func (e *Engine) validate(g Ghost) bool {
	if g.Start < 0 {
		return false
	}
	tracks := e.tracks()
	if g.TrackIndex < 0 || g.TrackIndex >= len(tracks) {
		return false
	}
	// Video items are reorder-only: their drop slot comes from clip midpoints,
	// so transient overlap with siblings is expected and allowed.
	if e.session.origin.isVideo {
		return true
	}
	return !tracks[g.TrackIndex].Overlaps(g.Start, g.End, e.session.origin.itemID)
}

// insertionIndex picks the clip-array slot for a video move by comparing the
// drop time with every other clip's midpoint, then correcting for the moved
// clip's own vacated slot.
func (e *Engine) insertionIndex(dropTime float64) int {
	if e.clipSpans == nil {
		return e.session.origin.clipIndex
	}
	spans := e.clipSpans()
	from := e.session.origin.clipIndex
	index := 0
	for i, span := range spans {
		if i == from {
			continue
		}
		mid := (span.Start + span.End) / 2
		if dropTime > mid {
			index++
		}
	}
	return index
}
