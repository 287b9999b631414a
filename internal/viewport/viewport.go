package viewport

// Scale bounds and input tuning.
const (
	MinScale = 0.1
	MaxScale = 10.0

	// PinchSensitivity amplifies raw pinch-distance ratios; bare ratios from
	// touch hardware are too subtle to feel responsive.
	PinchSensitivity = 2.0
)

// Engine holds the zoom scale and scroll offset for the timeline viewport.
// It is owned by the component rendering the timeline and shares state with
// the interaction engine only through Scale and Scroll.
type Engine struct {
	Scale  float64
	Scroll float64

	// ContainerWidth is the viewport's pixel width. When set, scroll is
	// clamped so the viewport never runs past the end of the content.
	ContainerWidth float64

	// pinchPan accumulates two-finger pan independently of zoom.
	pinchPan float64
}

// New returns an engine at 1:1 scale.
func New() *Engine {
	return &Engine{Scale: 1}
}

// Step returns the zoom increment for the current scale. Steps are coarser at
// high zoom so perceived zoom speed stays roughly constant.
func Step(scale float64) float64 {
	switch {
	case scale >= 3:
		return 0.5
	case scale >= 1:
		return 0.25
	default:
		return 0.1
	}
}

// VisibleDuration is the span of time the viewport covers at the current
// scale: the full duration at or above 1:1, proportionally more when zoomed
// out below it.
func (e *Engine) VisibleDuration(total float64) float64 {
	if e.Scale >= 1 || e.Scale <= 0 {
		return total
	}
	return total / e.Scale
}

// SetScale zooms to the given scale keeping the content under focalX (a
// client-space x coordinate) visually stationary. containerLeft is the
// container's client-space left edge. Callers with no pointer position pass
// the playhead's client x instead.
func (e *Engine) SetScale(newScale, focalX, containerLeft float64) {
	newScale = clampScale(newScale)
	oldScale := e.Scale
	if oldScale <= 0 {
		oldScale = 1
	}
	if newScale == oldScale {
		return
	}
	local := focalX - containerLeft
	relative := e.Scroll + local
	e.Scroll = relative*(newScale/oldScale) - local
	e.Scale = newScale
	e.clampScroll()
}

// WheelZoom applies one wheel notch. Zoom only engages with the modifier key
// held; an unmodified wheel is scroll and is ignored here. Returns whether
// the event was consumed.
func (e *Engine) WheelZoom(deltaY float64, modifier bool, focalX, containerLeft float64) bool {
	if !modifier || deltaY == 0 {
		return false
	}
	step := Step(e.Scale)
	target := e.Scale + step
	if deltaY > 0 {
		target = e.Scale - step
	}
	e.SetScale(target, focalX, containerLeft)
	return true
}

// Pinch applies a raw pinch-distance ratio (current/initial) around focalX.
// The ratio is amplified by PinchSensitivity before use.
func (e *Engine) Pinch(ratio, focalX, containerLeft float64) {
	if ratio <= 0 {
		return
	}
	amplified := 1 + (ratio-1)*PinchSensitivity
	e.SetScale(e.Scale*amplified, focalX, containerLeft)
}

// Pan shifts the scroll offset by delta pixels, clamped to the content. Pan
// during a pinch accumulates separately so zoom recentering does not eat it.
func (e *Engine) Pan(delta float64) {
	e.pinchPan += delta
	e.Scroll += delta
	e.clampScroll()
}

// clampScroll keeps the scroll offset inside [0, ContentWidth-ContainerWidth].
// With no known container width only the origin clamp applies.
func (e *Engine) clampScroll() {
	if e.ContainerWidth > 0 {
		max := e.ContentWidth(e.ContainerWidth) - e.ContainerWidth
		if e.Scroll > max {
			e.Scroll = max
		}
	}
	if e.Scroll < 0 {
		e.Scroll = 0
	}
}

// ResetGesture clears accumulated pinch-pan state at gesture end.
func (e *Engine) ResetGesture() {
	e.pinchPan = 0
}

// ContentWidth is the pixel width of the full timeline at the current scale.
func (e *Engine) ContentWidth(containerWidth float64) float64 {
	scale := e.Scale
	if scale < 1 {
		scale = 1
	}
	return containerWidth * scale
}

// TimeAtPixel maps a container-relative pixel x to a time on the timeline.
func (e *Engine) TimeAtPixel(x, containerWidth, total float64) float64 {
	width := e.ContentWidth(containerWidth)
	if width <= 0 {
		return 0
	}
	return (e.Scroll + x) / width * total
}

func clampScale(scale float64) float64 {
	if scale < MinScale {
		return MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}
