package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"deliverypulse/internal/core/domain"
)

type TranscriptionRepository struct {
	db *sql.DB
}

func NewTranscriptionRepository(db *sql.DB) *TranscriptionRepository {
	return &TranscriptionRepository{db: db}
}

func (r *TranscriptionRepository) Create(ctx context.Context, tr *domain.Transcription) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO transcriptions (id, project_id, file_path, file_name, file_kind, file_size, raw_text, processed_at, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`,
		tr.ID, tr.ProjectID, tr.FilePath, tr.FileName, string(tr.FileKind), tr.FileSize,
		tr.RawText, tr.ProcessedAt, tr.CreatedBy, tr.CreatedAt,
	)
	if err != nil {
		if isPgErrorCode(err, pgForeignKeyViolation) {
			return domain.WrapError(domain.ErrInvalidInput, "create transcription", err)
		}
		return fmt.Errorf("insert transcription: %w", err)
	}
	return nil
}

func (r *TranscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Transcription, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, project_id, file_path, file_name, file_kind, file_size, raw_text, processed_at, created_by, created_at
FROM transcriptions
WHERE id = $1
`, id)

	tr, err := scanTranscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get transcription", err)
		}
		return nil, fmt.Errorf("scan transcription: %w", err)
	}
	return tr, nil
}

// ListByProject returns all transcriptions, or only those of one
// project when projectID is non-empty.
func (r *TranscriptionRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Transcription, error) {
	query := `
SELECT id, project_id, file_path, file_name, file_kind, file_size, raw_text, processed_at, created_by, created_at
FROM transcriptions
`
	args := []any{}
	if projectID != "" {
		query += "WHERE project_id = $1\n"
		args = append(args, projectID)
	}
	query += "ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Transcription, 0)
	for rows.Next() {
		tr, err := scanTranscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transcription row: %w", err)
		}
		out = append(out, *tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcriptions: %w", err)
	}
	return out, nil
}

// SetRawText records the extracted text and processing timestamp. This
// is the single mutation a transcription row ever receives.
func (r *TranscriptionRepository) SetRawText(ctx context.Context, id, rawText string, processedAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE transcriptions
SET raw_text = $2, processed_at = $3
WHERE id = $1
`, id, rawText, processedAt)
	if err != nil {
		return fmt.Errorf("set raw text: %w", err)
	}
	return requireRowAffected(result, "set raw text")
}

func (r *TranscriptionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transcriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transcription: %w", err)
	}
	return requireRowAffected(result, "delete transcription")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTranscription(row rowScanner) (*domain.Transcription, error) {
	var tr domain.Transcription
	var kind string
	err := row.Scan(
		&tr.ID, &tr.ProjectID, &tr.FilePath, &tr.FileName, &kind, &tr.FileSize,
		&tr.RawText, &tr.ProcessedAt, &tr.CreatedBy, &tr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	tr.FileKind = domain.FileKind(kind)
	return &tr, nil
}
