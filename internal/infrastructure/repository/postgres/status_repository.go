package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"deliverypulse/internal/core/domain"
)

type StatusRepository struct {
	db *sql.DB
}

func NewStatusRepository(db *sql.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// Create inserts an immutable status row. The timestamp is assigned by
// the database so that concurrent inserts order by commit time and the
// stored value is returned to the caller.
func (r *StatusRepository) Create(ctx context.Context, status *domain.ProjectStatus) error {
	row := r.db.QueryRowContext(ctx, `
INSERT INTO project_statuses (id, project_id, is_on_scope, is_on_time, is_on_budget, next_delivery, risks, updated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING updated_at
`,
		status.ID, status.ProjectID, status.IsOnScope, status.IsOnTime, status.IsOnBudget,
		status.NextDelivery, status.Risks, status.UpdatedBy,
	)
	if err := row.Scan(&status.UpdatedAt); err != nil {
		if isPgErrorCode(err, pgForeignKeyViolation) {
			return domain.WrapError(domain.ErrInvalidInput, "create status", err)
		}
		return fmt.Errorf("insert project status: %w", err)
	}
	return nil
}

func (r *StatusRepository) ListByProject(ctx context.Context, projectID string) ([]domain.ProjectStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, project_id, is_on_scope, is_on_time, is_on_budget, next_delivery, risks, updated_by, updated_at
FROM project_statuses
WHERE project_id = $1
ORDER BY updated_at DESC
`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query project statuses: %w", err)
	}
	defer rows.Close()

	statuses := make([]domain.ProjectStatus, 0)
	for rows.Next() {
		var status domain.ProjectStatus
		if err := scanStatus(rows, &status); err != nil {
			return nil, fmt.Errorf("scan status row: %w", err)
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statuses: %w", err)
	}
	return statuses, nil
}

// LatestInRange returns the most recent status row for the project
// inside the optional [from, to] window, or nil when none exists.
func (r *StatusRepository) LatestInRange(ctx context.Context, projectID string, from, to *time.Time) (*domain.ProjectStatus, error) {
	query := `
SELECT id, project_id, is_on_scope, is_on_time, is_on_budget, next_delivery, risks, updated_by, updated_at
FROM project_statuses
WHERE project_id = $1
`
	args := []any{projectID}
	if from != nil {
		args = append(args, *from)
		query += "AND updated_at >= $" + strconv.Itoa(len(args)) + "\n"
	}
	if to != nil {
		args = append(args, *to)
		query += "AND updated_at <= $" + strconv.Itoa(len(args)) + "\n"
	}
	query += "ORDER BY updated_at DESC\nLIMIT 1"

	var status domain.ProjectStatus
	err := scanStatus(r.db.QueryRowContext(ctx, query, args...), &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan latest status: %w", err)
	}
	return &status, nil
}

func scanStatus(row rowScanner, status *domain.ProjectStatus) error {
	return row.Scan(
		&status.ID, &status.ProjectID, &status.IsOnScope, &status.IsOnTime, &status.IsOnBudget,
		&status.NextDelivery, &status.Risks, &status.UpdatedBy, &status.UpdatedAt,
	)
}
