package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"wordcut/internal/api"
	"wordcut/internal/project"
	"wordcut/internal/script"
	"wordcut/internal/testsupport"
)

type fakeProber struct {
	duration float64
}

func (f fakeProber) Duration(ctx context.Context, path string) (float64, error) {
	return f.duration, nil
}

func newTestClient(t *testing.T, token string) *Client {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	router := api.NewRouter(api.ServerConfig{
		Token:   token,
		Store:   st,
		Prober:  fakeProber{duration: 12},
		Options: script.Options{PauseThreshold: cfg.Editor.PauseThreshold},
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	c, err := New(server.URL, token)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestClientProjectRoundTrip(t *testing.T) {
	c := newTestClient(t, "")
	ctx := context.Background()

	created, err := c.CreateProject(ctx, "Beach Day")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if created.Name != "Beach Day" || created.ID == "" {
		t.Fatalf("unexpected project: %+v", created)
	}

	clip, err := c.AddClip(ctx, created.ID, api.AddClipRequest{SourcePath: "/media/a.mp4"})
	if err != nil {
		t.Fatalf("AddClip: %v", err)
	}
	if clip.Duration != 12 {
		t.Fatalf("expected probed duration 12, got %v", clip.Duration)
	}

	_, err = c.AttachTranscript(ctx, created.ID, clip.ID, api.TranscriptRequest{
		Words: []project.Word{{ID: clip.ID + "-w0", Text: "hello", Start: 0, End: 0.5}},
	})
	if err != nil {
		t.Fatalf("AttachTranscript: %v", err)
	}

	tl, err := c.Timeline(ctx, created.ID)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if tl.TotalDuration != 12 {
		t.Fatalf("expected total duration 12, got %v", tl.TotalDuration)
	}
	if len(tl.ScriptTrack.Items) == 0 {
		t.Fatal("expected script items")
	}

	summaries, err := c.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ClipCount != 1 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	if err := c.DeleteProject(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := c.GetProject(ctx, created.ID); err == nil {
		t.Fatal("expected error for deleted project")
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	c := newTestClient(t, "secret")
	ctx := context.Background()

	if _, err := c.ListProjects(ctx); err != nil {
		t.Fatalf("authorized request failed: %v", err)
	}

	c.token = ""
	if _, err := c.ListProjects(ctx); err == nil {
		t.Fatal("expected unauthorized error without token")
	}
}

func TestClientExportLifecycle(t *testing.T) {
	c := newTestClient(t, "")
	ctx := context.Background()

	p, err := c.CreateProject(ctx, "Short")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := c.AddClip(ctx, p.ID, api.AddClipRequest{SourcePath: "/media/a.mp4"}); err != nil {
		t.Fatalf("AddClip: %v", err)
	}

	jobID, err := c.StartExport(ctx, p.ID)
	if err != nil {
		t.Fatalf("StartExport: %v", err)
	}
	status, err := c.ExportStatus(ctx, jobID)
	if err != nil {
		t.Fatalf("ExportStatus: %v", err)
	}
	if status.Type != "progress" {
		t.Fatalf("expected pending job to report progress, got %q", status.Type)
	}

	if _, err := c.ExportStatus(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown job")
	}
}

func TestDaemonUnavailable(t *testing.T) {
	c, err := New("127.0.0.1:1", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Health(context.Background())
	if !IsDaemonUnavailable(err) {
		t.Fatalf("expected daemon-unavailable error, got %v", err)
	}
}
