package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	analysis := Analysis{
		ID:              "analysis-1",
		UserID:          "user-1",
		Symptoms:        "itchy red patches on both arms",
		ImageCount:      1,
		Tier:            TierFree,
		Status:          StatusPending,
		Recommendations: []string{"See a dermatologist"},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	mock.ExpectExec("INSERT INTO skin_analyses").
		WithArgs(
			analysis.ID,
			analysis.UserID,
			analysis.Symptoms,
			analysis.ImageCount,
			analysis.Tier,
			analysis.Status,
			analysis.Condition,
			analysis.Confidence,
			analysis.Severity,
			analysis.Description,
			sqlmock.AnyArg(), // recommendations
			sqlmock.AnyArg(), // risk_factors
			sqlmock.AnyArg(), // visual_findings
			nil,              // treatment_plan
			analysis.Source,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE skin_analyses").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), Analysis{ID: "missing", Status: StatusCompleted})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesJSONColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	columns := []string{
		"id", "user_id", "symptoms", "image_count", "tier", "status", "condition",
		"confidence", "severity", "description", "recommendations", "risk_factors",
		"visual_findings", "treatment_plan", "source", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).AddRow(
		"analysis-1", "user-1", "itchy red patches", 0, TierPremium, StatusCompleted,
		"Eczema", 80, SeverityModerate, "Chronic inflammatory condition.",
		[]byte(`["Moisturize daily"]`), []byte(`["Family history"]`),
		[]byte(`["Erythematous patches"]`),
		`[{"phase":1,"title":"Initial","duration":"1-2 weeks","treatments":["Topical steroid"]}]`,
		SourceAI, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM skin_analyses").
		WithArgs("analysis-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Condition != "Eczema" {
		t.Fatalf("condition = %q", got.Condition)
	}
	if len(got.Recommendations) != 1 || got.Recommendations[0] != "Moisturize daily" {
		t.Fatalf("recommendations = %v", got.Recommendations)
	}
	if len(got.TreatmentPlan) != 1 || got.TreatmentPlan[0].Title != "Initial" {
		t.Fatalf("treatment plan = %+v", got.TreatmentPlan)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM skin_analyses").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCountByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}
