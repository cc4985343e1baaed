package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/learnprofile/internal/models"
)

func (r *SQLiteRepo) CreatePersonalityResult(ctx context.Context, res *models.PersonalityResult) (int64, error) {
	if res == nil {
		return 0, fmt.Errorf("personality result is nil")
	}

	traits, err := models.EncodeList(res.Traits)
	if err != nil {
		return 0, err
	}
	recs, err := models.EncodeList(res.Recommendations)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		created := now()
		out, err := tx.ExecContext(ctx, `INSERT INTO personality_results (user_id, traits, recommendations, created) VALUES (?, ?, ?, ?)`,
			res.UserID, traits, recs, created)
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

// GetLatestPersonalityResult returns the most recent result for the user.
// Each list column falls back to empty on its own when it fails to parse.
func (r *SQLiteRepo) GetLatestPersonalityResult(ctx context.Context, userID int64) (*models.PersonalityResult, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, traits, recommendations, created FROM personality_results WHERE user_id = ? ORDER BY created DESC, id DESC LIMIT 1`, userID)
	var res models.PersonalityResult
	var traits, recs string
	if err := row.Scan(&res.ID, &res.UserID, &traits, &recs, &res.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	traitList, err := models.DecodeRawList(traits)
	if err != nil {
		r.logger.Warn("corrupted traits on personality result", slog.Int64("id", res.ID), slog.Any("err", err))
	}
	res.Traits = traitList

	recList, err := models.DecodeStringList(recs)
	if err != nil {
		r.logger.Warn("corrupted recommendations on personality result", slog.Int64("id", res.ID), slog.Any("err", err))
	}
	res.Recommendations = recList

	return &res, nil
}
