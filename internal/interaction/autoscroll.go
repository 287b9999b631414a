package interaction

// AutoScroller scrolls the timeline while a drag hovers near a container
// edge. It runs on its own frame loop, independent of the drag engine's
// sample coalescing: the owner calls Observe on pointer movement and Tick
// once per frame, and must Stop it when the pointer leaves the edge zone or
// the drag ends.
type AutoScroller struct {
	// EdgeZone is the width in pixels of the hot zone at each edge.
	EdgeZone float64
	// Speed is the scroll delta applied per frame while active.
	Speed float64

	active    bool
	direction float64
}

// NewAutoScroller returns a scroller with the given edge zone and per-frame
// speed in pixels.
func NewAutoScroller(edgeZone, speed float64) *AutoScroller {
	return &AutoScroller{EdgeZone: edgeZone, Speed: speed}
}

// Observe updates the scroller from the pointer's x position relative to the
// container's client-space edges. Inside an edge zone the loop arms; outside
// it disarms.
func (a *AutoScroller) Observe(pointerX, containerLeft, containerRight float64) {
	switch {
	case pointerX <= containerLeft+a.EdgeZone:
		a.active = true
		a.direction = -1
	case pointerX >= containerRight-a.EdgeZone:
		a.active = true
		a.direction = 1
	default:
		a.active = false
		a.direction = 0
	}
}

// Active reports whether the loop should keep scheduling frames.
func (a *AutoScroller) Active() bool {
	return a.active
}

// Tick applies one frame of scrolling through apply. A stopped scroller is a
// no-op, so a frame already scheduled when Stop lands does nothing.
func (a *AutoScroller) Tick(apply func(delta float64)) {
	if !a.active || apply == nil {
		return
	}
	apply(a.Speed * a.direction)
}

// Stop disarms the loop.
func (a *AutoScroller) Stop() {
	a.active = false
	a.direction = 0
}
