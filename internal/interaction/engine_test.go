package interaction_test

import (
	"math"
	"testing"

	"wordcut/internal/interaction"
	"wordcut/internal/timeline"
	"wordcut/internal/timerange"
)

// Geometry used throughout: 1000px visible width over 100s, so 10px == 1s.
const (
	visibleWidth    = 1000.0
	visibleDuration = 100.0
)

type fixture struct {
	tracks  []timeline.Track
	spans   []timerange.Range
	moves   []string
	resizes []string
	reorder [][2]int
	engine  *interaction.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tracks: []timeline.Track{
			{
				ID: "video",
				Items: []timeline.Item{
					{ID: "clip0", Start: 0, End: 10, Type: timeline.TypeVideo, Data: timeline.ItemData{ClipIndex: 0}},
					{ID: "clip1", Start: 10, End: 18, Type: timeline.TypeVideo, Data: timeline.ItemData{ClipIndex: 1}},
					{ID: "clip2", Start: 18, End: 30, Type: timeline.TypeVideo, Data: timeline.ItemData{ClipIndex: 2}},
				},
			},
			{
				ID: "text",
				Items: []timeline.Item{
					{ID: "title", Start: 2, End: 6, Type: timeline.TypeText},
					{ID: "credit", Start: 20, End: 25, Type: timeline.TypeText},
				},
			},
			{
				ID: "script",
				Items: []timeline.Item{
					{ID: "w1", Start: 1, End: 2, Type: timeline.TypeScript},
					{ID: "p1", Start: 2, End: 3, Type: timeline.TypePause},
				},
			},
		},
		spans: []timerange.Range{{Start: 0, End: 10}, {Start: 10, End: 18}, {Start: 18, End: 30}},
	}
	f.engine = interaction.NewEngine(
		interaction.Config{
			VisibleWidth:    visibleWidth,
			VisibleDuration: visibleDuration,
		},
		func() []timeline.Track { return f.tracks },
		func() []timerange.Range { return f.spans },
		interaction.Callbacks{
			Move: func(id string, start, end float64, trackID string) {
				f.moves = append(f.moves, id)
				f.applyMove(id, start, end, trackID)
			},
			Resize: func(id string, start, end float64) {
				f.resizes = append(f.resizes, id)
				f.applyResize(id, start, end)
			},
			ReorderClip: func(from, to int) {
				f.reorder = append(f.reorder, [2]int{from, to})
			},
		},
	)
	return f
}

func (f *fixture) applyMove(id string, start, end float64, trackID string) {
	for ti := range f.tracks {
		idx := f.tracks[ti].ItemByID(id)
		if idx < 0 {
			continue
		}
		item := f.tracks[ti].Items[idx]
		item.Start, item.End = start, end
		for di := range f.tracks {
			if f.tracks[di].ID == trackID {
				item.TrackID = trackID
				f.tracks[ti].Items = append(f.tracks[ti].Items[:idx], f.tracks[ti].Items[idx+1:]...)
				f.tracks[di].Items = append(f.tracks[di].Items, item)
				return
			}
		}
		f.tracks[ti].Items[idx] = item
		return
	}
}

func (f *fixture) applyResize(id string, start, end float64) {
	for ti := range f.tracks {
		if idx := f.tracks[ti].ItemByID(id); idx >= 0 {
			f.tracks[ti].Items[idx].Start = start
			f.tracks[ti].Items[idx].End = end
			return
		}
	}
}

func drag(e *interaction.Engine, g interaction.Gesture, track int, id string, fromX, fromY, toX, toY float64) {
	e.Start(g, track, id, interaction.Sample{ClientX: fromX, ClientY: fromY, Phase: interaction.PhaseStart})
	e.Update(interaction.Sample{ClientX: toX, ClientY: toY, Phase: interaction.PhaseMove})
	e.Tick()
	e.End(interaction.Sample{ClientX: toX, ClientY: toY, Phase: interaction.PhaseEnd})
}

func TestMoveSnapsAndCommits(t *testing.T) {
	f := newFixture(t)

	// 83px right = 8.3s, snapped to 8.3 on the 0.1 grid.
	drag(f.engine, interaction.GestureMove, 1, "title", 100, 100, 183, 100)

	if len(f.moves) != 1 || f.moves[0] != "title" {
		t.Fatalf("expected one move of title, got %v", f.moves)
	}
	idx := f.tracks[1].ItemByID("title")
	got := f.tracks[1].Items[idx]
	if math.Abs(got.Start-10.3) > 1e-9 || math.Abs(got.End-14.3) > 1e-9 {
		t.Fatalf("title moved to [%v,%v], want [10.3,14.3]", got.Start, got.End)
	}
}

func TestMoveRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	before := f.tracks[1].Items

	// Drop "title" onto "credit" [20,25]: 200px = 20s delta puts it at [22,26].
	drag(f.engine, interaction.GestureMove, 1, "title", 0, 0, 200, 0)

	if len(f.moves) != 0 {
		t.Fatalf("overlapping move must not commit, got %v", f.moves)
	}
	after := f.tracks[1].Items
	if len(before) != len(after) {
		t.Fatal("track items changed after rejected move")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("item %d changed after rejected move", i)
		}
	}
}

func TestMoveAcrossTracks(t *testing.T) {
	f := newFixture(t)

	// +64px of vertical travel is one lane down at the default track height.
	drag(f.engine, interaction.GestureMove, 1, "title", 100, 10, 150, 10+interaction.DefaultTrackHeight)

	idx := f.tracks[2].ItemByID("title")
	if idx < 0 {
		t.Fatal("title should have moved to the script lane")
	}
	if got := f.tracks[2].Items[idx]; math.Abs(got.Start-7) > 1e-9 {
		t.Fatalf("title start = %v, want 7", got.Start)
	}
}

func TestResizeStartHoldsEndFixed(t *testing.T) {
	f := newFixture(t)

	// Pull the left edge of title [2,6] right by 3s.
	drag(f.engine, interaction.GestureResizeStart, 1, "title", 100, 0, 130, 0)

	idx := f.tracks[1].ItemByID("title")
	got := f.tracks[1].Items[idx]
	if math.Abs(got.Start-5) > 1e-9 || math.Abs(got.End-6) > 1e-9 {
		t.Fatalf("resize-start gave [%v,%v], want [5,6]", got.Start, got.End)
	}
}

func TestResizeEndEnforcesMinimum(t *testing.T) {
	f := newFixture(t)

	// Drag the right edge of title [2,6] far left; duration clamps to the floor.
	drag(f.engine, interaction.GestureResizeEnd, 1, "title", 100, 0, 20, 0)

	idx := f.tracks[1].ItemByID("title")
	got := f.tracks[1].Items[idx]
	if math.Abs(got.Start-2) > 1e-9 {
		t.Fatalf("resize-end moved start to %v", got.Start)
	}
	if math.Abs(got.Duration()-timeline.MinItemDuration) > 1e-9 {
		t.Fatalf("duration = %v, want min %v", got.Duration(), timeline.MinItemDuration)
	}
}

func TestScriptAndPauseItemsRejectDrag(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"w1", "p1"} {
		if f.engine.Start(interaction.GestureMove, 2, id, interaction.Sample{Phase: interaction.PhaseStart}) {
			t.Fatalf("%s is locked and must reject drag-start", id)
		}
		if f.engine.Session().Active {
			t.Fatal("session must stay inactive after rejected start")
		}
	}
}

func TestVideoMoveReordersByMidpoint(t *testing.T) {
	f := newFixture(t)

	// Drag clip0 [0,10] right past clip1's midpoint (14s) and clip2's (24s):
	// 250px = 25s, dropping at 25 → insertion index 2.
	drag(f.engine, interaction.GestureMove, 0, "clip0", 0, 0, 250, 0)

	if len(f.reorder) != 1 {
		t.Fatalf("expected one reorder, got %v", f.reorder)
	}
	if f.reorder[0] != [2]int{0, 2} {
		t.Fatalf("reorder = %v, want [0 2]", f.reorder[0])
	}
	if len(f.moves) != 0 {
		t.Fatal("video move must reorder, not emit a move callback")
	}
}

func TestVideoMoveOverlapExempt(t *testing.T) {
	f := newFixture(t)

	// Drop clip0 in the middle of clip1: overlap is allowed for video items,
	// and the drop before clip1's midpoint keeps the original order.
	drag(f.engine, interaction.GestureMove, 0, "clip0", 0, 0, 110, 0)

	if len(f.reorder) != 0 {
		t.Fatalf("drop before the next midpoint should not reorder, got %v", f.reorder)
	}
}

func TestSamplesCoalesceToFrames(t *testing.T) {
	f := newFixture(t)

	f.engine.Start(interaction.GestureMove, 1, "title", interaction.Sample{ClientX: 100, Phase: interaction.PhaseStart})
	f.engine.Update(interaction.Sample{ClientX: 110, Phase: interaction.PhaseMove})
	f.engine.Update(interaction.Sample{ClientX: 120, Phase: interaction.PhaseMove})
	f.engine.Update(interaction.Sample{ClientX: 130, Phase: interaction.PhaseMove})
	f.engine.Tick()

	ghost := f.engine.Session().Ghost
	if math.Abs(ghost.Start-5) > 1e-9 {
		t.Fatalf("ghost start = %v, want 5 (only the latest sample applies)", ghost.Start)
	}
	f.engine.Cancel()
}

func TestSessionResetUnconditionally(t *testing.T) {
	f := newFixture(t)

	// Invalid release still clears the session.
	drag(f.engine, interaction.GestureMove, 1, "title", 0, 0, 200, 0)
	if f.engine.Session().Active {
		t.Fatal("session active after invalid release")
	}

	// A new start while a session is somehow live resets the old one.
	f.engine.Start(interaction.GestureMove, 1, "title", interaction.Sample{Phase: interaction.PhaseStart})
	if !f.engine.Start(interaction.GestureMove, 1, "credit", interaction.Sample{Phase: interaction.PhaseStart}) {
		t.Fatal("second start should succeed by resetting the first")
	}
	f.engine.Cancel()
	if f.engine.Session().Active {
		t.Fatal("session active after cancel")
	}
}
