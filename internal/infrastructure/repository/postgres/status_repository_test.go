package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"deliverypulse/internal/core/domain"
)

func TestStatusRepositoryCreateReturnsServerTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	assigned := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO project_statuses").
		WithArgs("s-1", "p-1", true, nil, false, "next week", nil, "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(assigned))

	yes, no := true, false
	next := "next week"
	repo := NewStatusRepository(db)
	status := &domain.ProjectStatus{
		ID:        "s-1",
		ProjectID: "p-1",
		StatusFields: domain.StatusFields{
			IsOnScope:    &yes,
			IsOnBudget:   &no,
			NextDelivery: &next,
		},
		UpdatedBy: "user-1",
	}
	if err := repo.Create(context.Background(), status); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !status.UpdatedAt.Equal(assigned) {
		t.Fatalf("UpdatedAt = %v, want server-assigned %v", status.UpdatedAt, assigned)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStatusRepositoryLatestInRangeBuildsWindowQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "project_id", "is_on_scope", "is_on_time", "is_on_budget",
		"next_delivery", "risks", "updated_by", "updated_at",
	}).AddRow("s-1", "p-1", true, true, nil, nil, "vendor risk", "user-1", to.Add(-time.Hour))

	mock.ExpectQuery("FROM project_statuses").
		WithArgs("p-1", from, to).
		WillReturnRows(rows)

	repo := NewStatusRepository(db)
	status, err := repo.LatestInRange(context.Background(), "p-1", &from, &to)
	if err != nil {
		t.Fatalf("LatestInRange() error = %v", err)
	}
	if status == nil || status.ID != "s-1" {
		t.Fatalf("status = %+v", status)
	}
	if status.IsOnBudget != nil {
		t.Fatalf("nil boolean must scan as nil, got %v", *status.IsOnBudget)
	}
	if status.Risks == nil || *status.Risks != "vendor risk" {
		t.Fatalf("risks = %v", status.Risks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStatusRepositoryLatestInRangeReturnsNilWhenEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM project_statuses").
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "project_id", "is_on_scope", "is_on_time", "is_on_budget",
			"next_delivery", "risks", "updated_by", "updated_at",
		}))

	repo := NewStatusRepository(db)
	status, err := repo.LatestInRange(context.Background(), "p-1", nil, nil)
	if err != nil {
		t.Fatalf("LatestInRange() error = %v", err)
	}
	if status != nil {
		t.Fatalf("expected nil for a project without statuses, got %+v", status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
