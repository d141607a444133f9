package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"deliverypulse/internal/core/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO clients (id, name, created_at, updated_at)
VALUES ($1, $2, $3, $4)
`, client.ID, client.Name, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		if isPgErrorCode(err, pgUniqueViolation) {
			return domain.WrapError(domain.ErrConflict, "create client", err)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at, updated_at
FROM clients
WHERE id = $1
`, id)

	var client domain.Client
	err := row.Scan(&client.ID, &client.Name, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get client", err)
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return &client, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, created_at, updated_at
FROM clients
ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.CreatedAt, &client.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client row: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE clients
SET name = $2, updated_at = $3
WHERE id = $1
`, client.ID, client.Name, time.Now().UTC())
	if err != nil {
		if isPgErrorCode(err, pgUniqueViolation) {
			return domain.WrapError(domain.ErrConflict, "update client", err)
		}
		return fmt.Errorf("update client: %w", err)
	}
	return requireRowAffected(result, "update client")
}

// Delete refuses to remove a client that any project still references.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isPgErrorCode(err, pgForeignKeyViolation) {
			return domain.WrapError(domain.ErrConflict, "delete client", err)
		}
		return fmt.Errorf("delete client: %w", err)
	}
	return requireRowAffected(result, "delete client")
}

func isPgErrorCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func requireRowAffected(result sql.Result, operation string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, operation, sql.ErrNoRows)
	}
	return nil
}
