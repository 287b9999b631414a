package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"wordcut/internal/collapse"
	"wordcut/internal/project"
	"wordcut/internal/services"
)

func listProjectsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := cfg.Store.ListProjects(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}
		resp := ProjectListResponse{Projects: make([]ProjectSummaryResponse, len(summaries))}
		for i, s := range summaries {
			resp.Projects[i] = summaryToResponse(s)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func createProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			WriteError(w, http.StatusBadRequest, "project name required", "BAD_REQUEST")
			return
		}
		p := project.New(uuid.NewString(), name)
		if err := cfg.Store.SaveProject(r.Context(), p); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to save project", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusCreated, p)
	}
}

func getProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

// updateProjectHandler replaces the stored document. The editor owns the
// deletion sets and overlay arrangement; the id in the path wins over any id
// in the body.
func updateProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}
		var updated project.Project
		if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		if strings.TrimSpace(updated.Name) == "" {
			updated.Name = existing.Name
		}
		updated.EnsureSets()
		if err := cfg.Store.SaveProject(r.Context(), &updated); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to save project", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, &updated)
	}
}

func deleteProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := cfg.Store.DeleteProject(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to delete project", "INTERNAL_ERROR")
			return
		}
		if !removed {
			WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}
		var req AddClipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		sourcePath := strings.TrimSpace(req.SourcePath)
		if sourcePath == "" {
			WriteError(w, http.StatusBadRequest, "sourcePath required", "BAD_REQUEST")
			return
		}
		duration := req.Duration
		if duration <= 0 {
			if cfg.Prober == nil {
				WriteError(w, http.StatusBadRequest, "duration required", "BAD_REQUEST")
				return
			}
			probed, err := cfg.Prober.Duration(r.Context(), sourcePath)
			if err != nil {
				WriteError(w, http.StatusUnprocessableEntity, services.UserMessage(err), "PROBE_FAILED")
				return
			}
			duration = probed
		}
		if duration <= 0 {
			WriteError(w, http.StatusUnprocessableEntity, "clip has no duration", "PROBE_FAILED")
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			title = project.DeriveTitle(sourcePath)
		}
		clip := project.Clip{
			ID:         uuid.NewString(),
			Title:      title,
			SourcePath: sourcePath,
			Duration:   duration,
		}
		p.Clips = append(p.Clips, clip)
		if err := cfg.Store.SaveProject(r.Context(), p); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to save project", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusCreated, clip)
	}
}

func attachTranscriptHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}
		clipID := chi.URLParam(r, "clipID")
		clipIndex := -1
		for i := range p.Clips {
			if p.Clips[i].ID == clipID {
				clipIndex = i
				break
			}
		}
		if clipIndex < 0 {
			WriteError(w, http.StatusNotFound, "clip not found", "NOT_FOUND")
			return
		}
		var req TranscriptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		for i := range req.Words {
			req.Words[i].ClipIndex = clipIndex
		}
		p.Clips[clipIndex].Words = req.Words
		p.Clips[clipIndex].SilenceSegments = req.SilenceSegments
		if err := cfg.Store.SaveProject(r.Context(), p); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to save project", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, p.Clips[clipIndex])
	}
}

func timelineHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}
		result := collapse.Build(p, cfg.Options)
		WriteJSON(w, http.StatusOK, TimelineResponse{
			VideoTrack:    result.VideoTrack,
			ScriptTrack:   result.ScriptTrack,
			TotalDuration: result.TotalDuration,
			DeletedRanges: result.DeletedRanges,
		})
	}
}

func loadProject(w http.ResponseWriter, r *http.Request, cfg ServerConfig) (*project.Project, bool) {
	p, err := cfg.Store.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
		} else {
			WriteError(w, http.StatusInternalServerError, "failed to load project", "INTERNAL_ERROR")
		}
		return nil, false
	}
	return p, true
}
