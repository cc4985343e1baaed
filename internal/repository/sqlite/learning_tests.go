package sqlite

import (
	"context"
	"fmt"

	"github.com/garnizeh/learnprofile/internal/models"
)

func (r *SQLiteRepo) CreateLearningTest(ctx context.Context, lt *models.LearningTest) (int64, error) {
	if lt == nil {
		return 0, fmt.Errorf("learning test is nil")
	}

	testDate := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO learning_tests (user_id, test_type, score, test_date) VALUES (?, ?, ?, ?)`, lt.UserID, lt.TestType, lt.Score, testDate)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	lt.ID = id
	lt.TestDate = testDate
	return id, nil
}

// ListLearningTestsByUser returns the user's tests, newest first.
func (r *SQLiteRepo) ListLearningTestsByUser(ctx context.Context, userID int64) ([]models.LearningTest, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, test_type, score, test_date FROM learning_tests WHERE user_id = ? ORDER BY test_date DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LearningTest{}
	for rows.Next() {
		var lt models.LearningTest
		if err := rows.Scan(&lt.ID, &lt.UserID, &lt.TestType, &lt.Score, &lt.TestDate); err != nil {
			return nil, err
		}
		out = append(out, lt)
	}
	return out, rows.Err()
}
