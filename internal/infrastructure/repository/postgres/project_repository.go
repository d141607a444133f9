package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"deliverypulse/internal/core/domain"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO projects (id, name, client_id, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, project.ID, project.Name, project.ClientID, project.CreatedBy, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		if isPgErrorCode(err, pgUniqueViolation) {
			return domain.WrapError(domain.ErrConflict, "create project", err)
		}
		if isPgErrorCode(err, pgForeignKeyViolation) {
			return domain.WrapError(domain.ErrInvalidInput, "create project", err)
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, client_id, created_by, created_at, updated_at
FROM projects
WHERE id = $1
`, id)

	var project domain.Project
	err := row.Scan(&project.ID, &project.Name, &project.ClientID, &project.CreatedBy, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get project", err)
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &project, nil
}

func (r *ProjectRepository) GetWithClient(ctx context.Context, id string) (*domain.ProjectWithClient, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT p.id, p.name, p.client_id, p.created_by, p.created_at, p.updated_at, c.name
FROM projects p
JOIN clients c ON c.id = p.client_id
WHERE p.id = $1
`, id)

	var pw domain.ProjectWithClient
	err := row.Scan(&pw.ID, &pw.Name, &pw.ClientID, &pw.CreatedBy, &pw.CreatedAt, &pw.UpdatedAt, &pw.ClientName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get project", err)
		}
		return nil, fmt.Errorf("scan project with client: %w", err)
	}
	return &pw, nil
}

// List returns projects joined with their client name, optionally
// restricted to a client-id allow-list.
func (r *ProjectRepository) List(ctx context.Context, clientIDs []string) ([]domain.ProjectWithClient, error) {
	query := `
SELECT p.id, p.name, p.client_id, p.created_by, p.created_at, p.updated_at, c.name
FROM projects p
JOIN clients c ON c.id = p.client_id
`
	args := make([]any, 0, len(clientIDs))
	if len(clientIDs) > 0 {
		placeholders := make([]string, 0, len(clientIDs))
		for i, id := range clientIDs {
			placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
			args = append(args, id)
		}
		query += fmt.Sprintf("WHERE p.client_id IN (%s)\n", strings.Join(placeholders, ", "))
	}
	query += "ORDER BY p.name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]domain.ProjectWithClient, 0)
	for rows.Next() {
		var pw domain.ProjectWithClient
		if err := rows.Scan(&pw.ID, &pw.Name, &pw.ClientID, &pw.CreatedBy, &pw.CreatedAt, &pw.UpdatedAt, &pw.ClientName); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		projects = append(projects, pw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE projects
SET name = $2, client_id = $3, updated_at = $4
WHERE id = $1
`, project.ID, project.Name, project.ClientID, time.Now().UTC())
	if err != nil {
		if isPgErrorCode(err, pgUniqueViolation) {
			return domain.WrapError(domain.ErrConflict, "update project", err)
		}
		if isPgErrorCode(err, pgForeignKeyViolation) {
			return domain.WrapError(domain.ErrInvalidInput, "update project", err)
		}
		return fmt.Errorf("update project: %w", err)
	}
	return requireRowAffected(result, "update project")
}

// Delete cascades to the project's statuses and transcriptions through
// the schema's ON DELETE CASCADE rules.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireRowAffected(result, "delete project")
}
