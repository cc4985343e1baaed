package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/learnprofile/internal/models"
)

func (r *SQLiteRepo) CreateLearningStyleResult(ctx context.Context, res *models.LearningStyleResult) (int64, error) {
	if res == nil {
		return 0, fmt.Errorf("learning style result is nil")
	}

	recs, err := models.EncodeList(res.Recommendations)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		created := now()
		out, err := tx.ExecContext(ctx, `INSERT INTO learning_style_results (user_id, style, description, recommendations, created) VALUES (?, ?, ?, ?, ?)`,
			res.UserID, res.Style, res.Description, recs, created)
		if err != nil {
			return err
		}
		if id, err = out.LastInsertId(); err != nil {
			return err
		}
		res.ID = id
		res.Created = created
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetLatestLearningStyleResult returns the most recent result for the user.
// A stored recommendations list that fails to parse is returned as empty.
func (r *SQLiteRepo) GetLatestLearningStyleResult(ctx context.Context, userID int64) (*models.LearningStyleResult, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, style, description, recommendations, created FROM learning_style_results WHERE user_id = ? ORDER BY created DESC, id DESC LIMIT 1`, userID)
	var res models.LearningStyleResult
	var recs string
	if err := row.Scan(&res.ID, &res.UserID, &res.Style, &res.Description, &recs, &res.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	list, err := models.DecodeStringList(recs)
	if err != nil {
		r.logger.Warn("corrupted recommendations on learning style result",
			slog.Int64("id", res.ID), slog.Any("err", err))
	}
	res.Recommendations = list

	return &res, nil
}
