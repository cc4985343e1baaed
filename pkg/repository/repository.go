package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/garnizeh/learnprofile/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Lookups return (nil, nil) when no row matches.

// ErrConflict is returned when a write would violate a unique field.
var ErrConflict = errors.New("conflict")

var (
	ErrDuplicateEmail    = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrDuplicateUsername = fmt.Errorf("%w: username already taken", ErrConflict)
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type LearningStyleResultRepo interface {
	CreateLearningStyleResult(ctx context.Context, r *models.LearningStyleResult) (int64, error)
	GetLatestLearningStyleResult(ctx context.Context, userID int64) (*models.LearningStyleResult, error)
}

type PersonalityResultRepo interface {
	CreatePersonalityResult(ctx context.Context, r *models.PersonalityResult) (int64, error)
	GetLatestPersonalityResult(ctx context.Context, userID int64) (*models.PersonalityResult, error)
}

type LearningStyleRepo interface {
	UpsertLearningStyle(ctx context.Context, ls *models.LearningStyle) (int64, error)
	GetLearningStyleByUser(ctx context.Context, userID int64) (*models.LearningStyle, error)
}

type LearningTestRepo interface {
	CreateLearningTest(ctx context.Context, lt *models.LearningTest) (int64, error)
	ListLearningTestsByUser(ctx context.Context, userID int64) ([]models.LearningTest, error)
}

type RecommendationRepo interface {
	CreateRecommendation(ctx context.Context, rec *models.Recommendation) (int64, error)
	ListRecommendationsByUser(ctx context.Context, userID int64) ([]models.Recommendation, error)
}
