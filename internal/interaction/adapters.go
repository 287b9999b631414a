package interaction

// Input-source adapters. Mouse, touch, and pointer-capture streams differ in
// shape but all collapse into Sample before the engine sees them, so the state
// machine has exactly one entry point for position updates.

// MouseEvent mirrors the relevant fields of a DOM mouse event.
type MouseEvent struct {
	ClientX float64
	ClientY float64
	Type    string // "mousedown", "mousemove", "mouseup"
}

// FromMouse normalizes a mouse event.
func FromMouse(ev MouseEvent) (Sample, bool) {
	phase, ok := map[string]Phase{
		"mousedown": PhaseStart,
		"mousemove": PhaseMove,
		"mouseup":   PhaseEnd,
	}[ev.Type]
	if !ok {
		return Sample{}, false
	}
	return Sample{ClientX: ev.ClientX, ClientY: ev.ClientY, Phase: phase}, true
}

// TouchPoint is one active touch.
type TouchPoint struct {
	ClientX float64
	ClientY float64
}

// TouchEvent mirrors a DOM touch event. Touches holds the active touches at
// event time; touchend events carry none for the lifted finger.
type TouchEvent struct {
	Touches []TouchPoint
	Type    string // "touchstart", "touchmove", "touchend", "touchcancel"
}

// FromTouch normalizes a single-finger touch event. Multi-touch events belong
// to the pinch path and are rejected here.
func FromTouch(ev TouchEvent) (Sample, bool) {
	switch ev.Type {
	case "touchstart", "touchmove":
		if len(ev.Touches) != 1 {
			return Sample{}, false
		}
		phase := PhaseMove
		if ev.Type == "touchstart" {
			phase = PhaseStart
		}
		return Sample{ClientX: ev.Touches[0].ClientX, ClientY: ev.Touches[0].ClientY, Phase: phase}, true
	case "touchend":
		return Sample{Phase: PhaseEnd}, true
	case "touchcancel":
		return Sample{Phase: PhaseCancel}, true
	}
	return Sample{}, false
}

// PointerEvent mirrors a DOM pointer event (the unified Safari/desktop path).
type PointerEvent struct {
	ClientX float64
	ClientY float64
	Type    string // "pointerdown", "pointermove", "pointerup", "pointercancel"
}

// FromPointer normalizes a pointer event.
func FromPointer(ev PointerEvent) (Sample, bool) {
	phase, ok := map[string]Phase{
		"pointerdown":   PhaseStart,
		"pointermove":   PhaseMove,
		"pointerup":     PhaseEnd,
		"pointercancel": PhaseCancel,
	}[ev.Type]
	if !ok {
		return Sample{}, false
	}
	return Sample{ClientX: ev.ClientX, ClientY: ev.ClientY, Phase: phase}, true
}
