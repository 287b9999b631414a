package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wordcut/internal/project"
	"wordcut/internal/services"
)

// SaveProject inserts or replaces a project document. UpdatedAt is stamped.
func (s *Store) SaveProject(ctx context.Context, p *project.Project) error {
	if p == nil {
		return errors.New("project is nil")
	}
	if p.ID == "" {
		return services.Wrap(services.ErrValidation, "store", "save project", "project id required", nil)
	}
	p.UpdatedAt = time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, data_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             name = excluded.name,
             data_json = excluded.data_json,
             updated_at = excluded.updated_at`,
		p.ID,
		p.Name,
		string(data),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// GetProject fetches a project by id. Missing projects return ErrNotFound.
func (s *Store) GetProject(ctx context.Context, id string) (*project.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data_json FROM projects WHERE id = ?`, id)
	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.Wrap(services.ErrNotFound, "store", "get project", id, nil)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	var p project.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	p.EnsureSets()
	return &p, nil
}

// ProjectSummary is the listing row for a project.
type ProjectSummary struct {
	ID        string
	Name      string
	ClipCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListProjects returns summaries for every project ordered by creation time.
func (s *Store) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, data_json, created_at, updated_at FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var summaries []ProjectSummary
	for rows.Next() {
		var (
			summary    ProjectSummary
			data       string
			createdRaw string
			updatedRaw string
		)
		if err := rows.Scan(&summary.ID, &summary.Name, &data, &createdRaw, &updatedRaw); err != nil {
			return nil, err
		}
		summary.CreatedAt = parseTimeString(createdRaw)
		summary.UpdatedAt = parseTimeString(updatedRaw)
		var p project.Project
		if err := json.Unmarshal([]byte(data), &p); err == nil {
			summary.ClipCount = len(p.Clips)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// DeleteProject removes a project and, via foreign keys, its export jobs.
func (s *Store) DeleteProject(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
