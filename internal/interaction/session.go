package interaction

// Gesture identifies what part of the item the pointer grabbed.
type Gesture string

const (
	GestureMove        Gesture = "move"
	GestureResizeStart Gesture = "resize-start"
	GestureResizeEnd   Gesture = "resize-end"
)

// Phase is the lifecycle position of a normalized pointer sample.
type Phase string

const (
	PhaseStart  Phase = "start"
	PhaseMove   Phase = "move"
	PhaseEnd    Phase = "end"
	PhaseCancel Phase = "cancel"
)

// Sample is a normalized pointer event. Mouse, touch, and trackpad gesture
// streams all reduce to this shape before reaching the engine.
type Sample struct {
	ClientX float64
	ClientY float64
	Phase   Phase
}

// Ghost is the candidate placement rendered during a drag, before commit.
type Ghost struct {
	Start      float64
	End        float64
	TrackIndex int
	Valid      bool
}

// snapshot freezes the dragged item's geometry at drag-start.
type snapshot struct {
	itemID     string
	start      float64
	duration   float64
	trackIndex int
	isVideo    bool
	clipIndex  int
}

// Session is the ephemeral single-writer drag state. It exists only between
// drag-start and release; Reset is idempotent and callable from any exit path.
type Session struct {
	Active  bool
	Gesture Gesture
	Ghost   Ghost

	// InsertIndex is the clip-array insertion slot computed for video moves.
	InsertIndex int

	origin  snapshot
	startX  float64
	startY  float64
	pending *Sample
}

// Reset clears all session state. Safe to call repeatedly.
func (s *Session) Reset() {
	*s = Session{}
}
