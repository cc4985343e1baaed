package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/learnprofile/internal/models"
)

// UpsertLearningStyle stores the user's score snapshot, replacing any
// previous one.
func (r *SQLiteRepo) UpsertLearningStyle(ctx context.Context, ls *models.LearningStyle) (int64, error) {
	if ls == nil {
		return 0, fmt.Errorf("learning style is nil")
	}

	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		assessed := now()
		row := tx.QueryRowContext(ctx, `INSERT INTO learning_styles (user_id, visual_score, auditory_score, kinesthetic_score, dominant_style, assessment_date) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(user_id) DO UPDATE SET visual_score=excluded.visual_score, auditory_score=excluded.auditory_score, kinesthetic_score=excluded.kinesthetic_score, dominant_style=excluded.dominant_style, assessment_date=excluded.assessment_date RETURNING id`,
			ls.UserID, ls.VisualScore, ls.AuditoryScore, ls.KinestheticScore, ls.DominantStyle, assessed)
		if err := row.Scan(&id); err != nil {
			return err
		}
		ls.ID = id
		ls.AssessmentDate = assessed
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *SQLiteRepo) GetLearningStyleByUser(ctx context.Context, userID int64) (*models.LearningStyle, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, visual_score, auditory_score, kinesthetic_score, dominant_style, assessment_date FROM learning_styles WHERE user_id = ?`, userID)
	var ls models.LearningStyle
	if err := row.Scan(&ls.ID, &ls.UserID, &ls.VisualScore, &ls.AuditoryScore, &ls.KinestheticScore, &ls.DominantStyle, &ls.AssessmentDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ls, nil
}
