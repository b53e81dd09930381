package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `
id, user_id, symptoms, image_count, tier, status, condition, confidence, severity,
description, recommendations, risk_factors, visual_findings, treatment_plan, source,
created_at, updated_at`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO skin_analyses (
	id, user_id, symptoms, image_count, tier, status, condition, confidence, severity,
	description, recommendations, risk_factors, visual_findings, treatment_plan, source,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	recommendations, riskFactors, visualFindings, treatmentPlan, err := marshalResultColumns(analysis)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
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
		recommendations,
		riskFactors,
		visualFindings,
		treatmentPlan,
		analysis.Source,
		analysis.CreatedAt,
		analysis.UpdatedAt,
	)
	return err
}

// Update replaces result fields for an existing analysis.
func (r *PGRepo) Update(ctx context.Context, analysis Analysis) error {
	const query = `
UPDATE skin_analyses
SET status = $1,
    condition = $2,
    confidence = $3,
    severity = $4,
    description = $5,
    recommendations = $6::jsonb,
    risk_factors = $7::jsonb,
    visual_findings = $8::jsonb,
    treatment_plan = $9::jsonb,
    source = $10,
    updated_at = $11
WHERE id = $12`

	recommendations, riskFactors, visualFindings, treatmentPlan, err := marshalResultColumns(analysis)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		analysis.Status,
		analysis.Condition,
		analysis.Confidence,
		analysis.Severity,
		analysis.Description,
		recommendations,
		riskFactors,
		visualFindings,
		treatmentPlan,
		analysis.Source,
		analysis.UpdatedAt,
		analysis.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT ` + analysisColumns + `
FROM skin_analyses
WHERE id = $1
LIMIT 1`
	analysis, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// ListByUser lists analyses for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	const query = `
SELECT ` + analysisColumns + `
FROM skin_analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

// CountByUser returns the number of analyses recorded for a user.
func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM skin_analyses WHERE user_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var recommendations, riskFactors, visualFindings []byte
	var treatmentPlan sql.NullString
	var source sql.NullString
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Symptoms,
		&a.ImageCount,
		&a.Tier,
		&a.Status,
		&a.Condition,
		&a.Confidence,
		&a.Severity,
		&a.Description,
		&recommendations,
		&riskFactors,
		&visualFindings,
		&treatmentPlan,
		&source,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	if len(recommendations) > 0 {
		_ = json.Unmarshal(recommendations, &a.Recommendations)
	}
	if len(riskFactors) > 0 {
		_ = json.Unmarshal(riskFactors, &a.RiskFactors)
	}
	if len(visualFindings) > 0 {
		_ = json.Unmarshal(visualFindings, &a.VisualFindings)
	}
	if treatmentPlan.Valid && treatmentPlan.String != "" && treatmentPlan.String != "null" {
		_ = json.Unmarshal([]byte(treatmentPlan.String), &a.TreatmentPlan)
	}
	if source.Valid {
		a.Source = source.String
	}
	return a, nil
}

func marshalResultColumns(analysis Analysis) (recommendations, riskFactors, visualFindings []byte, treatmentPlan any, err error) {
	recommendations, err = marshalJSONList(analysis.Recommendations)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	riskFactors, err = marshalJSONList(analysis.RiskFactors)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	visualFindings, err = marshalJSONList(analysis.VisualFindings)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if analysis.TreatmentPlan != nil {
		payload, merr := json.Marshal(analysis.TreatmentPlan)
		if merr != nil {
			return nil, nil, nil, nil, merr
		}
		treatmentPlan = payload
	}
	return recommendations, riskFactors, visualFindings, treatmentPlan, nil
}

func marshalJSONList(values []string) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}
