package consultations

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, consultation Consultation) error {
	const query = `
INSERT INTO consultations (id, user_id, doctor_id, doctor_name, type, scheduled_date, scheduled_time, price, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		consultation.ID,
		consultation.UserID,
		consultation.DoctorID,
		consultation.DoctorName,
		consultation.Type,
		consultation.ScheduledDate,
		consultation.ScheduledTime,
		consultation.Price,
		consultation.Status,
		consultation.CreatedAt,
		consultation.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, consultationID string) (Consultation, error) {
	const query = `
SELECT id, user_id, doctor_id, doctor_name, type, scheduled_date, scheduled_time, price, status, created_at, updated_at
FROM consultations
WHERE id = $1
LIMIT 1`
	var consultation Consultation
	err := r.DB.QueryRowContext(ctx, query, consultationID).Scan(
		&consultation.ID,
		&consultation.UserID,
		&consultation.DoctorID,
		&consultation.DoctorName,
		&consultation.Type,
		&consultation.ScheduledDate,
		&consultation.ScheduledTime,
		&consultation.Price,
		&consultation.Status,
		&consultation.CreatedAt,
		&consultation.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Consultation{}, ErrNotFound
		}
		return Consultation{}, err
	}
	return consultation, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Consultation, error) {
	const query = `
SELECT id, user_id, doctor_id, doctor_name, type, scheduled_date, scheduled_time, price, status, created_at, updated_at
FROM consultations
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Consultation
	for rows.Next() {
		var consultation Consultation
		if err := rows.Scan(
			&consultation.ID,
			&consultation.UserID,
			&consultation.DoctorID,
			&consultation.DoctorName,
			&consultation.Type,
			&consultation.ScheduledDate,
			&consultation.ScheduledTime,
			&consultation.Price,
			&consultation.Status,
			&consultation.CreatedAt,
			&consultation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, consultation)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, consultationID, status string) error {
	const query = `
UPDATE consultations
SET status = $1,
    updated_at = now()
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, status, consultationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
