package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"wordcut/internal/api"
	"wordcut/internal/project"
)

// ErrDaemonUnavailable indicates the daemon API could not be reached.
var ErrDaemonUnavailable = errors.New("daemon API unavailable")

// Client talks to a running wordcut daemon over HTTP.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
}

// New builds a client for the given bind address. An address without a
// scheme is treated as http.
func New(bind, token string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, errors.New("client: bind address required")
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, fmt.Errorf("client: parse bind address: %w", err)
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	// No client timeout. Export polling and transcript uploads are bounded
	// by the caller's context instead.
	return &Client{base: base, token: token, http: &http.Client{}}, nil
}

// Health checks daemon liveness.
func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var resp api.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &resp)
	return resp, err
}

// ListProjects returns summaries of every stored project.
func (c *Client) ListProjects(ctx context.Context) ([]api.ProjectSummaryResponse, error) {
	var resp api.ProjectListResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// CreateProject creates a project with the given display name.
func (c *Client) CreateProject(ctx context.Context, name string) (*project.Project, error) {
	var p project.Project
	err := c.do(ctx, http.MethodPost, "/api/projects", api.CreateProjectRequest{Name: name}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProject fetches a full project document.
func (c *Client) GetProject(ctx context.Context, id string) (*project.Project, error) {
	var p project.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject replaces a project document.
func (c *Client) UpdateProject(ctx context.Context, p *project.Project) (*project.Project, error) {
	var updated project.Project
	err := c.do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(p.ID), p, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject removes a project and its export jobs.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil)
}

// AddClip registers a clip source file with a project.
func (c *Client) AddClip(ctx context.Context, projectID string, req api.AddClipRequest) (project.Clip, error) {
	var clip project.Clip
	err := c.do(ctx, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/clips", req, &clip)
	return clip, err
}

// AttachTranscript uploads transcription output for a clip.
func (c *Client) AttachTranscript(ctx context.Context, projectID, clipID string, req api.TranscriptRequest) (project.Clip, error) {
	path := "/api/projects/" + url.PathEscape(projectID) + "/clips/" + url.PathEscape(clipID) + "/transcript"
	var clip project.Clip
	err := c.do(ctx, http.MethodPost, path, req, &clip)
	return clip, err
}

// Timeline returns the collapsed preview tracks for a project.
func (c *Client) Timeline(ctx context.Context, projectID string) (api.TimelineResponse, error) {
	var resp api.TimelineResponse
	err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(projectID)+"/timeline", nil, &resp)
	return resp, err
}

// StartExport enqueues an export job and returns its handle.
func (c *Client) StartExport(ctx context.Context, projectID string) (string, error) {
	var resp api.ExportStartResponse
	err := c.do(ctx, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/export", nil, &resp)
	if err != nil {
		return "", err
	}
	return resp.JobID, nil
}

// ExportStatus polls an export job.
func (c *Client) ExportStatus(ctx context.Context, jobID string) (api.ExportStatusResponse, error) {
	var resp api.ExportStatusResponse
	err := c.do(ctx, http.MethodGet, "/api/exports/"+url.PathEscape(jobID), nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	endpoint := c.base.ResolveReference(&url.URL{Path: path})

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr api.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func wrapTransportError(err error) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v; start the daemon with `wordcut serve`", ErrDaemonUnavailable, err)
	}
	return err
}

// IsDaemonUnavailable reports whether err means the daemon is not reachable.
func IsDaemonUnavailable(err error) bool {
	return errors.Is(err, ErrDaemonUnavailable)
}
