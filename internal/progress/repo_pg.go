package progress

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO progress_entries (id, user_id, analysis_id, date, photos, symptoms_rating, notes, improvement_score, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	photos, err := json.Marshal(entry.Photos)
	if err != nil {
		return err
	}
	if entry.Photos == nil {
		photos = []byte("[]")
	}
	_, err = r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.AnalysisID,
		entry.Date,
		photos,
		entry.SymptomsRating,
		entry.Notes,
		entry.ImprovementScore,
		entry.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByAnalysis(ctx context.Context, userID, analysisID string) ([]Entry, error) {
	const query = `
SELECT id, user_id, analysis_id, date, photos, symptoms_rating, notes, improvement_score, created_at
FROM progress_entries
WHERE user_id = $1 AND analysis_id = $2
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var photos []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.AnalysisID,
			&entry.Date,
			&photos,
			&entry.SymptomsRating,
			&entry.Notes,
			&entry.ImprovementScore,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(photos) > 0 {
			_ = json.Unmarshal(photos, &entry.Photos)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
