package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wordcut/internal/services"
)

// NewJob inserts a pending export job for a project and returns it.
func (s *Store) NewJob(ctx context.Context, projectID string) (*Job, error) {
	now := time.Now().UTC()
	job := &Job{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO export_jobs (
            id, project_id, status, progress_percent, progress_message,
            output_path, error_message, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID,
		job.ProjectID,
		job.Status,
		0.0,
		nil,
		nil,
		nil,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

// GetJob fetches an export job by id. Missing jobs return ErrNotFound.
func (s *Store) GetJob(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM export_jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "get job", id, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// UpdateJob persists changes to an existing export job.
func (s *Store) UpdateJob(ctx context.Context, job *Job) error {
	if job == nil {
		return errors.New("job is nil")
	}
	job.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE export_jobs
         SET status = ?, progress_percent = ?, progress_message = ?,
             output_path = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		job.Status,
		job.ProgressPercent,
		nullableString(job.ProgressMessage),
		nullableString(job.OutputPath),
		nullableString(job.ErrorMessage),
		formatTime(job.UpdatedAt),
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// SetJobProgress updates only the progress columns of an in-flight job.
func (s *Store) SetJobProgress(ctx context.Context, id string, percent float64, message string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE export_jobs SET progress_percent = ?, progress_message = ?, updated_at = ? WHERE id = ?`,
		percent,
		nullableString(message),
		formatTime(time.Now().UTC()),
		id,
	)
	if err != nil {
		return fmt.Errorf("set job progress: %w", err)
	}
	return nil
}

// NextPending returns the oldest pending job, or nil when none exist.
func (s *Store) NextPending(ctx context.Context) (*Job, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+jobColumns+` FROM export_jobs WHERE status = ? ORDER BY created_at LIMIT 1`,
		StatusPending,
	)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// JobsForProject returns a project's export jobs, newest first.
func (s *Store) JobsForProject(ctx context.Context, projectID string) ([]*Job, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+jobColumns+` FROM export_jobs WHERE project_id = ? ORDER BY created_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("jobs for project: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// ResetStuckExporting returns jobs left mid-export (daemon crash) to pending.
func (s *Store) ResetStuckExporting(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE export_jobs
         SET status = ?, progress_percent = 0, progress_message = 'Reset from interrupted export', updated_at = ?
         WHERE status = ?`,
		StatusPending,
		formatTime(time.Now().UTC()),
		StatusExporting,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck jobs: %w", err)
	}
	return res.RowsAffected()
}

// FailActive marks pending and exporting jobs failed with the given reason.
func (s *Store) FailActive(ctx context.Context, reason string) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE export_jobs SET status = ?, error_message = ?, updated_at = ? WHERE status IN (?, ?)`,
		StatusFailed,
		reason,
		formatTime(time.Now().UTC()),
		StatusPending,
		StatusExporting,
	)
	if err != nil {
		return 0, fmt.Errorf("fail active jobs: %w", err)
	}
	return res.RowsAffected()
}

// Health aggregates job state for diagnostic output.
func (s *Store) Health(ctx context.Context) (HealthSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM export_jobs GROUP BY status`)
	if err != nil {
		return HealthSummary{}, fmt.Errorf("job stats: %w", err)
	}
	defer rows.Close()

	health := HealthSummary{}
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return HealthSummary{}, err
		}
		health.Total += count
		switch status {
		case StatusPending:
			health.Pending += count
		case StatusExporting:
			health.Exporting += count
		case StatusCompleted:
			health.Completed += count
		case StatusFailed:
			health.Failed += count
		}
	}
	return health, rows.Err()
}

const jobColumns = "id, project_id, status, progress_percent, progress_message, output_path, error_message, created_at, updated_at"

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		job             Job
		statusStr       string
		progressMessage sql.NullString
		outputPath      sql.NullString
		errorMessage    sql.NullString
		createdRaw      string
		updatedRaw      string
	)
	if err := scanner.Scan(
		&job.ID,
		&job.ProjectID,
		&statusStr,
		&job.ProgressPercent,
		&progressMessage,
		&outputPath,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	job.Status = Status(statusStr)
	job.ProgressMessage = progressMessage.String
	job.OutputPath = outputPath.String
	job.ErrorMessage = errorMessage.String
	job.CreatedAt = parseTimeString(createdRaw)
	job.UpdatedAt = parseTimeString(updatedRaw)
	return &job, nil
}
