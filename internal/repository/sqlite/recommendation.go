package sqlite

import (
	"context"
	"fmt"

	"github.com/garnizeh/learnprofile/internal/models"
)

func (r *SQLiteRepo) CreateRecommendation(ctx context.Context, rec *models.Recommendation) (int64, error) {
	if rec == nil {
		return 0, fmt.Errorf("recommendation is nil")
	}

	created := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO recommendations (user_id, content, created) VALUES (?, ?, ?)`, rec.UserID, rec.Content, created)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	rec.ID = id
	rec.Created = created
	return id, nil
}

func (r *SQLiteRepo) ListRecommendationsByUser(ctx context.Context, userID int64) ([]models.Recommendation, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, content, created FROM recommendations WHERE user_id = ? ORDER BY created DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Recommendation{}
	for rows.Next() {
		var rec models.Recommendation
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Content, &rec.Created); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
