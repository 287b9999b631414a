package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wordcut/internal/cutter"
	"wordcut/internal/script"
	"wordcut/internal/store"
)

func TestWorkerDrainsPendingJobs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p := twoClipProject()
	if err := st.SaveProject(ctx, p); err != nil {
		t.Fatalf("save project: %v", err)
	}
	first, err := st.NewJob(ctx, p.ID)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	second, err := st.NewJob(ctx, p.ID)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	cut := cutter.New("ffmpeg")
	cut.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		return os.WriteFile(args[len(args)-1], []byte("media"), 0o644)
	})
	r := New(st, cut, t.TempDir(), script.Options{}, nil)

	w := NewWorker(st, r, time.Minute, nil)
	w.drain(ctx)

	for _, id := range []string{first.ID, second.ID} {
		job, err := st.GetJob(ctx, id)
		if err != nil {
			t.Fatalf("get job: %v", err)
		}
		if job.Status != store.StatusCompleted {
			t.Fatalf("job %s: expected completed, got %s (%s)", id, job.Status, job.ErrorMessage)
		}
		if _, err := os.Stat(job.OutputPath); err != nil {
			t.Fatalf("job %s output missing: %v", id, err)
		}
		if filepath.Dir(job.OutputPath) == "" {
			t.Fatal("expected output path")
		}
	}
}

func TestWorkerStartStopIdempotent(t *testing.T) {
	st := newTestStore(t)
	cut := cutter.New("ffmpeg")
	r := New(st, cut, t.TempDir(), script.Options{}, nil)
	w := NewWorker(st, r, 10*time.Millisecond, nil)

	w.Start(context.Background())
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
