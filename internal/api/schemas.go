package api

import (
	"time"

	"wordcut/internal/project"
	"wordcut/internal/store"
	"wordcut/internal/timeline"
	"wordcut/internal/timerange"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse answers liveness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

// CreateProjectRequest names a new project.
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// ProjectSummaryResponse is one row of the project listing.
type ProjectSummaryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClipCount int       `json:"clipCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectListResponse wraps the listing.
type ProjectListResponse struct {
	Projects []ProjectSummaryResponse `json:"projects"`
}

// AddClipRequest registers an uploaded clip with a project. Duration may be
// omitted when the server can probe the source itself.
type AddClipRequest struct {
	SourcePath string  `json:"sourcePath"`
	Title      string  `json:"title,omitempty"`
	Duration   float64 `json:"duration,omitempty"`
}

// TranscriptRequest attaches transcription output to a clip.
type TranscriptRequest struct {
	Words           []project.Word           `json:"words"`
	SilenceSegments []project.SilenceSegment `json:"silenceSegments,omitempty"`
}

// TimelineResponse is the collapsed preview of a project.
type TimelineResponse struct {
	VideoTrack    timeline.Track    `json:"videoTrack"`
	ScriptTrack   timeline.Track    `json:"scriptTrack"`
	TotalDuration float64           `json:"totalDuration"`
	DeletedRanges []timerange.Range `json:"deletedRanges"`
}

// ExportStartResponse returns the job handle for progress polling.
type ExportStartResponse struct {
	JobID string `json:"jobId"`
}

// ExportStatusResponse reports export progress in the shape polling clients
// expect: type is "progress", "done", or "error".
type ExportStatusResponse struct {
	Type       string  `json:"type"`
	Percent    float64 `json:"percent"`
	Message    string  `json:"message,omitempty"`
	OutputPath string  `json:"outputPath,omitempty"`
}

func summaryToResponse(s store.ProjectSummary) ProjectSummaryResponse {
	return ProjectSummaryResponse{
		ID:        s.ID,
		Name:      s.Name,
		ClipCount: s.ClipCount,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func jobToStatus(job *store.Job) ExportStatusResponse {
	switch job.Status {
	case store.StatusCompleted:
		return ExportStatusResponse{Type: "done", Percent: 100, OutputPath: job.OutputPath}
	case store.StatusFailed:
		return ExportStatusResponse{Type: "error", Message: job.ErrorMessage}
	default:
		return ExportStatusResponse{
			Type:    "progress",
			Percent: job.ProgressPercent,
			Message: job.ProgressMessage,
		}
	}
}
