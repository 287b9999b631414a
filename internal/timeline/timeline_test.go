package timeline_test

import (
	"math"
	"testing"

	"wordcut/internal/timeline"
)

func TestOverlaps(t *testing.T) {
	track := timeline.Track{
		ID: "text-track",
		Items: []timeline.Item{
			{ID: "a", Start: 1, End: 3, Type: timeline.TypeText},
			{ID: "b", Start: 5, End: 8, Type: timeline.TypeText},
		},
	}

	tests := []struct {
		name    string
		start   float64
		end     float64
		exclude string
		want    bool
	}{
		{name: "clear gap", start: 3, end: 5, want: false},
		{name: "overlaps first", start: 2, end: 4, want: true},
		{name: "touching edges do not collide", start: 8, end: 9, want: false},
		{name: "self excluded", start: 1, end: 3, exclude: "a", want: false},
		{name: "covers both", start: 0, end: 10, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := track.Overlaps(tc.start, tc.end, tc.exclude); got != tc.want {
				t.Fatalf("Overlaps(%v, %v, %q) = %v, want %v", tc.start, tc.end, tc.exclude, got, tc.want)
			}
		})
	}
}

func TestGaps(t *testing.T) {
	track := timeline.Track{
		Items: []timeline.Item{
			{ID: "b", Start: 5, End: 7},
			{ID: "a", Start: 1, End: 3},
		},
	}
	gaps := track.Gaps(10)
	want := []struct{ Start, End float64 }{{0, 1}, {3, 5}, {7, 10}}
	if len(gaps) != len(want) {
		t.Fatalf("got %d gaps, want %d: %v", len(gaps), len(want), gaps)
	}
	for i := range want {
		if gaps[i] != want[i] {
			t.Fatalf("gap %d = %v, want %v", i, gaps[i], want[i])
		}
	}
}

func TestSnap(t *testing.T) {
	if got := timeline.Snap(1.23, 0.1); math.Abs(got-1.2) > 1e-9 {
		t.Fatalf("Snap(1.23) = %v, want 1.2", got)
	}
	if got := timeline.Snap(1.25, 0.1); math.Abs(got-1.3) > 1e-9 {
		t.Fatalf("Snap(1.25) = %v, want 1.3", got)
	}
	if got := timeline.Snap(4.2, 0); got != 4.2 {
		t.Fatalf("Snap with zero grid should pass through, got %v", got)
	}
}

func TestFrameConversionRoundTrip(t *testing.T) {
	for frame := 0; frame < 300; frame += 7 {
		tm := timeline.FrameToTime(frame, 30)
		if got := timeline.TimeToFrame(tm, 30); got != frame {
			t.Fatalf("round trip frame %d -> %v -> %d", frame, tm, got)
		}
	}
}

func TestLocked(t *testing.T) {
	cases := map[timeline.ItemType]bool{
		timeline.TypeScript:  true,
		timeline.TypePause:   true,
		timeline.TypeVideo:   false,
		timeline.TypeText:    false,
		timeline.TypeSticker: false,
	}
	for typ, want := range cases {
		it := timeline.Item{Type: typ}
		if it.Locked() != want {
			t.Fatalf("Locked for %s = %v, want %v", typ, it.Locked(), want)
		}
	}
}
