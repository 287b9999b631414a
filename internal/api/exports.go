package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wordcut/internal/services"
)

func startExportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}
		if len(p.Clips) == 0 {
			WriteError(w, http.StatusUnprocessableEntity, "project has no clips", "EMPTY_PROJECT")
			return
		}
		job, err := cfg.Store.NewJob(r.Context(), p.ID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to queue export", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusAccepted, ExportStartResponse{JobID: job.ID})
	}
}

func exportStatusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := cfg.Store.GetJob(r.Context(), chi.URLParam(r, "jobID"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "export job not found", "NOT_FOUND")
			} else {
				WriteError(w, http.StatusInternalServerError, "failed to load export job", "INTERNAL_ERROR")
			}
			return
		}
		WriteJSON(w, http.StatusOK, jobToStatus(job))
	}
}
