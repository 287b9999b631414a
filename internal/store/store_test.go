package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"wordcut/internal/project"
	"wordcut/internal/services"
	"wordcut/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenPath(filepath.Join(t.TempDir(), "wordcut.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestProjectRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := project.New("proj-1", "Morning Vlog")
	p.Clips = append(p.Clips, project.Clip{
		ID:         "clip-a",
		Title:      "Intro",
		SourcePath: "/media/intro.mp4",
		Duration:   10,
		Words: []project.Word{
			{ID: "clip-a-w0", Text: "hello", Start: 0.2, End: 0.7},
		},
	})
	p.DeletedWordIDs.Add("clip-a-w0")
	p.DeletedPauseIDs.Add(project.PauseAfterID("clip-a-w0"))

	if err := s.SaveProject(ctx, p); err != nil {
		t.Fatalf("SaveProject returned error: %v", err)
	}

	loaded, err := s.GetProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("GetProject returned error: %v", err)
	}
	if loaded.Name != "Morning Vlog" {
		t.Fatalf("unexpected name: %q", loaded.Name)
	}
	if len(loaded.Clips) != 1 || loaded.Clips[0].Words[0].ID != "clip-a-w0" {
		t.Fatalf("unexpected clips: %+v", loaded.Clips)
	}
	if !loaded.DeletedWordIDs.Has("clip-a-w0") {
		t.Fatal("expected deleted word to survive round trip")
	}
	if !loaded.DeletedPauseIDs.Has("pause-after-clip-a-w0") {
		t.Fatal("expected deleted pause to survive round trip")
	}
}

func TestGetProjectMissingReturnsNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetProject(context.Background(), "nope")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndDeleteProjects(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2"} {
		if err := s.SaveProject(ctx, project.New(id, "Project "+id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	summaries, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(summaries))
	}

	removed, err := s.DeleteProject(ctx, "p1")
	if err != nil {
		t.Fatalf("DeleteProject returned error: %v", err)
	}
	if !removed {
		t.Fatal("expected project to be removed")
	}
	removed, err = s.DeleteProject(ctx, "p1")
	if err != nil {
		t.Fatalf("second delete returned error: %v", err)
	}
	if removed {
		t.Fatal("expected second delete to be a no-op")
	}
}

func TestJobLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveProject(ctx, project.New("p1", "Project")); err != nil {
		t.Fatalf("save project: %v", err)
	}

	job, err := s.NewJob(ctx, "p1")
	if err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}
	if job.Status != store.StatusPending {
		t.Fatalf("expected pending status, got %s", job.Status)
	}
	if job.ID == "" {
		t.Fatal("expected job id")
	}

	next, err := s.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending returned error: %v", err)
	}
	if next == nil || next.ID != job.ID {
		t.Fatalf("expected pending job %s, got %+v", job.ID, next)
	}

	job.Status = store.StatusExporting
	if err := s.UpdateJob(ctx, job); err != nil {
		t.Fatalf("UpdateJob returned error: %v", err)
	}
	if err := s.SetJobProgress(ctx, job.ID, 42.5, "cutting clip 1"); err != nil {
		t.Fatalf("SetJobProgress returned error: %v", err)
	}

	loaded, err := s.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob returned error: %v", err)
	}
	if loaded.Status != store.StatusExporting {
		t.Fatalf("unexpected status: %s", loaded.Status)
	}
	if loaded.ProgressPercent != 42.5 || loaded.ProgressMessage != "cutting clip 1" {
		t.Fatalf("unexpected progress: %v %q", loaded.ProgressPercent, loaded.ProgressMessage)
	}

	loaded.Status = store.StatusCompleted
	loaded.OutputPath = "/exports/p1.mp4"
	if err := s.UpdateJob(ctx, loaded); err != nil {
		t.Fatalf("final update returned error: %v", err)
	}

	jobs, err := s.JobsForProject(ctx, "p1")
	if err != nil {
		t.Fatalf("JobsForProject returned error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].OutputPath != "/exports/p1.mp4" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
	if !jobs[0].Status.Terminal() {
		t.Fatal("expected completed job to be terminal")
	}
}

func TestResetStuckExporting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveProject(ctx, project.New("p1", "Project")); err != nil {
		t.Fatalf("save project: %v", err)
	}
	job, err := s.NewJob(ctx, "p1")
	if err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}
	job.Status = store.StatusExporting
	job.ProgressPercent = 60
	if err := s.UpdateJob(ctx, job); err != nil {
		t.Fatalf("UpdateJob returned error: %v", err)
	}

	count, err := s.ResetStuckExporting(ctx)
	if err != nil {
		t.Fatalf("ResetStuckExporting returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 reset job, got %d", count)
	}

	loaded, err := s.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob returned error: %v", err)
	}
	if loaded.Status != store.StatusPending || loaded.ProgressPercent != 0 {
		t.Fatalf("unexpected job after reset: %+v", loaded)
	}
}

func TestHealthCounts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveProject(ctx, project.New("p1", "Project")); err != nil {
		t.Fatalf("save project: %v", err)
	}
	first, err := s.NewJob(ctx, "p1")
	if err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}
	if _, err := s.NewJob(ctx, "p1"); err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}
	first.Status = store.StatusFailed
	first.ErrorMessage = "ffmpeg exited"
	if err := s.UpdateJob(ctx, first); err != nil {
		t.Fatalf("UpdateJob returned error: %v", err)
	}

	health, err := s.Health(ctx)
	if err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
	if health.Total != 2 || health.Pending != 1 || health.Failed != 1 {
		t.Fatalf("unexpected health: %+v", health)
	}
}
