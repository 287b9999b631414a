package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wordcut/internal/cutter"
	"wordcut/internal/project"
	"wordcut/internal/script"
	"wordcut/internal/store"
	"wordcut/internal/timerange"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenPath(filepath.Join(t.TempDir(), "wordcut.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// twoClipProject builds the layout used throughout: clip a is 10s with words
// w1 [0,1) and w2 [3,4), clip b is 8s with no transcript.
func twoClipProject() *project.Project {
	p := project.New("proj-1", "Beach Day")
	p.Clips = []project.Clip{
		{
			ID: "a", Title: "Clip A", SourcePath: "/media/a.mp4", Duration: 10,
			Words: []project.Word{
				{ID: "w1", Text: "hey", Start: 0, End: 1},
				{ID: "w2", Text: "there", Start: 3, End: 4},
			},
		},
		{ID: "b", Title: "Clip B", SourcePath: "/media/b.mp4", Duration: 8},
	}
	return p
}

func TestExportCompletesJobAndWritesOutput(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := twoClipProject()
	p.DeletedPauseIDs.Add(project.PauseAfterID("w1"))
	if err := st.SaveProject(ctx, p); err != nil {
		t.Fatalf("save project: %v", err)
	}
	job, err := st.NewJob(ctx, p.ID)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	var cutSources []string
	cut := cutter.New("ffmpeg")
	cut.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		if src := argValue(args, "-i"); src != "" && !strings.HasSuffix(src, "concat.txt") {
			cutSources = append(cutSources, src)
		}
		return os.WriteFile(args[len(args)-1], []byte("media"), 0o644)
	})

	outputDir := t.TempDir()
	r := New(st, cut, outputDir, script.Options{}, nil)
	if err := r.Export(ctx, job); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	loaded, err := st.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if loaded.Status != store.StatusCompleted {
		t.Fatalf("expected completed job, got %s (%s)", loaded.Status, loaded.ErrorMessage)
	}
	if loaded.ProgressPercent != 100 {
		t.Fatalf("expected 100%% progress, got %v", loaded.ProgressPercent)
	}
	if !strings.HasPrefix(filepath.Base(loaded.OutputPath), "beach-day-") {
		t.Fatalf("unexpected output name: %q", loaded.OutputPath)
	}
	if _, err := os.Stat(loaded.OutputPath); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	// Both clips were cut: clip a twice (around the deleted pause), clip b once.
	if len(cutSources) != 3 {
		t.Fatalf("expected 3 extractions, got %d: %v", len(cutSources), cutSources)
	}
}

func TestExportFailureMarksJobFailed(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := twoClipProject()
	if err := st.SaveProject(ctx, p); err != nil {
		t.Fatalf("save project: %v", err)
	}
	job, err := st.NewJob(ctx, p.ID)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	cut := cutter.New("ffmpeg")
	cut.WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("exit status 1")
	})

	r := New(st, cut, t.TempDir(), script.Options{}, nil)
	if err := r.Export(ctx, job); err == nil {
		t.Fatal("expected export error")
	}

	loaded, err := st.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if loaded.Status != store.StatusFailed {
		t.Fatalf("expected failed job, got %s", loaded.Status)
	}
	if loaded.ErrorMessage == "" {
		t.Fatal("expected error message on job")
	}
	if loaded.OutputPath != "" {
		t.Fatalf("failed job must not record output, got %q", loaded.OutputPath)
	}
}

func TestExportRejectsFullyDeletedProject(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := project.New("proj-1", "Empty")
	p.Clips = []project.Clip{{ID: "a", SourcePath: "/media/a.mp4", Duration: 5}}
	p.DeletedSegments.Add(project.SilenceID(0, "s0"))
	p.Clips[0].SilenceSegments = []project.SilenceSegment{{ID: "s0", Start: 0, End: 5, Duration: 5}}
	if err := st.SaveProject(ctx, p); err != nil {
		t.Fatalf("save project: %v", err)
	}
	job, err := st.NewJob(ctx, p.ID)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	cut := cutter.New("ffmpeg")
	cut.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("no ffmpeg invocation expected")
		return nil
	})

	r := New(st, cut, t.TempDir(), script.Options{}, nil)
	if err := r.Export(ctx, job); err == nil {
		t.Fatal("expected validation error")
	}
	loaded, _ := st.GetJob(ctx, job.ID)
	if loaded.Status != store.StatusFailed {
		t.Fatalf("expected failed job, got %s", loaded.Status)
	}
}

func TestPlanClipCutsSplitsAtClipBoundaries(t *testing.T) {
	p := twoClipProject()
	// Keep [0,4) and [6,14): the second range straddles the clip boundary at 10.
	keep := []timerange.Range{{Start: 0, End: 4}, {Start: 6, End: 14}}
	plan := planClipCuts(p, keep)
	if len(plan) != 2 {
		t.Fatalf("expected cuts for both clips, got %d", len(plan))
	}
	first := plan[0]
	if first.clip.ID != "a" || len(first.ranges) != 2 {
		t.Fatalf("unexpected first plan entry: %+v", first)
	}
	if first.ranges[1] != (timerange.Range{Start: 6, End: 10}) {
		t.Fatalf("unexpected clip a second range: %+v", first.ranges[1])
	}
	second := plan[1]
	if second.clip.ID != "b" || len(second.ranges) != 1 {
		t.Fatalf("unexpected second plan entry: %+v", second)
	}
	// Rebased to clip b local time.
	if second.ranges[0] != (timerange.Range{Start: 0, End: 4}) {
		t.Fatalf("unexpected clip b range: %+v", second.ranges[0])
	}
}

func argValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
