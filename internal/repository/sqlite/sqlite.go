package sqlite

import (
	"io"
	"log/slog"
	"time"

	"github.com/garnizeh/learnprofile/internal/db"
	"github.com/garnizeh/learnprofile/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.LearningStyleResultRepo = (*SQLiteRepo)(nil)
var _ repository.PersonalityResultRepo = (*SQLiteRepo)(nil)
var _ repository.LearningStyleRepo = (*SQLiteRepo)(nil)
var _ repository.LearningTestRepo = (*SQLiteRepo)(nil)
var _ repository.RecommendationRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
