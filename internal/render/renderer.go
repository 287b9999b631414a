package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"wordcut/internal/collapse"
	"wordcut/internal/cutter"
	"wordcut/internal/logging"
	"wordcut/internal/project"
	"wordcut/internal/script"
	"wordcut/internal/services"
	"wordcut/internal/store"
	"wordcut/internal/textutil"
	"wordcut/internal/timerange"
)

// Renderer executes export jobs against the store.
type Renderer struct {
	store     *store.Store
	cutter    *cutter.Cutter
	outputDir string
	opts      script.Options
	logger    *slog.Logger
}

// New creates a renderer writing finished exports into outputDir.
func New(st *store.Store, cut *cutter.Cutter, outputDir string, opts script.Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Renderer{
		store:     st,
		cutter:    cut,
		outputDir: outputDir,
		opts:      opts,
		logger:    logging.NewComponentLogger(logger, "render"),
	}
}

// Export runs one job to completion, updating its status and progress in the
// store. The returned error mirrors what was recorded on the job.
func (r *Renderer) Export(ctx context.Context, job *store.Job) error {
	ctx = services.WithJobID(ctx, job.ID)
	ctx = services.WithProjectID(ctx, job.ProjectID)
	log := logging.WithContext(ctx, r.logger)

	job.Status = store.StatusExporting
	job.ProgressPercent = 0
	job.ProgressMessage = "Preparing export"
	if err := r.store.UpdateJob(ctx, job); err != nil {
		return err
	}

	outputPath, err := r.export(ctx, job, log)
	if err != nil {
		job.Status = store.StatusFailed
		job.ErrorMessage = services.UserMessage(err)
		job.ProgressMessage = ""
		if updateErr := r.store.UpdateJob(ctx, job); updateErr != nil {
			log.Error("record export failure", logging.Error(updateErr))
		}
		log.Error("export failed", logging.Error(err))
		return err
	}

	job.Status = store.StatusCompleted
	job.ProgressPercent = 100
	job.ProgressMessage = "Export complete"
	job.OutputPath = outputPath
	if err := r.store.UpdateJob(ctx, job); err != nil {
		return err
	}
	log.Info("export completed", "output", outputPath)
	return nil
}

func (r *Renderer) export(ctx context.Context, job *store.Job, log *slog.Logger) (string, error) {
	p, err := r.store.GetProject(ctx, job.ProjectID)
	if err != nil {
		return "", err
	}
	if len(p.Clips) == 0 {
		return "", services.Wrap(services.ErrValidation, "render", "export", "project has no clips", nil)
	}

	keep := collapse.KeepRanges(p, r.opts)
	if timerange.TotalDuration(keep) <= 0 {
		return "", services.Wrap(services.ErrValidation, "render", "export", "every range is deleted", nil)
	}

	plan := planClipCuts(p, keep)
	if len(plan) == 0 {
		return "", services.Wrap(services.ErrValidation, "render", "export", "no clip survives the deletions", nil)
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "render", "export", "create output dir", err)
	}
	scratch, err := os.MkdirTemp("", "wordcut-export-")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	parts := make([]string, 0, len(plan))
	for i, cut := range plan {
		percent := float64(i) / float64(len(plan)) * 90
		message := fmt.Sprintf("Cutting clip %d of %d", i+1, len(plan))
		if err := r.store.SetJobProgress(ctx, job.ID, percent, message); err != nil {
			log.Warn("record progress", logging.Error(err))
		}

		ext := filepath.Ext(cut.clip.SourcePath)
		if ext == "" {
			ext = ".mp4"
		}
		part := filepath.Join(scratch, fmt.Sprintf("part_%03d%s", i, ext))
		if err := r.cutter.Cut(ctx, cut.clip.SourcePath, cut.ranges, part); err != nil {
			return "", services.Wrap(services.ErrExternalTool, "render", "cut clip", cut.clip.Title, err)
		}
		parts = append(parts, part)
		log.Debug("clip cut", "clip", cut.clip.ID, "ranges", len(cut.ranges))
	}

	if err := r.store.SetJobProgress(ctx, job.ID, 95, "Joining segments"); err != nil {
		log.Warn("record progress", logging.Error(err))
	}

	outputPath := filepath.Join(r.outputDir, exportFilename(p, job.ID))
	if err := r.cutter.Join(ctx, parts, outputPath); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "render", "join segments", "", err)
	}
	return outputPath, nil
}

// clipCut pairs a clip with its surviving clip-local ranges.
type clipCut struct {
	clip   project.Clip
	ranges []timerange.Range
}

// planClipCuts splits global keep-ranges at clip boundaries and rebases each
// piece into its clip's local time. Clips ordered as in the project so the
// joined output preserves the arrangement.
func planClipCuts(p *project.Project, keep []timerange.Range) []clipCut {
	var plan []clipCut
	for i, clip := range p.Clips {
		clipStart := p.ClipStart(i)
		clipEnd := clipStart + clip.Duration
		var local []timerange.Range
		for _, r := range keep {
			start := max(r.Start, clipStart)
			end := min(r.End, clipEnd)
			if end <= start {
				continue
			}
			local = append(local, timerange.Range{Start: start - clipStart, End: end - clipStart})
		}
		if len(local) > 0 {
			plan = append(plan, clipCut{clip: clip, ranges: local})
		}
	}
	return plan
}

// exportFilename builds a stable, filesystem-safe output name.
func exportFilename(p *project.Project, jobID string) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = p.ID
	}
	cleaned := textutil.Slug(name)
	if cleaned == "" {
		cleaned = "export"
	}
	suffix := jobID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("%s-%s.mp4", cleaned, suffix)
}
