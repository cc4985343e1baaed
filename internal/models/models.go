package models

import "encoding/json"

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Timestamps are unix milliseconds (UTC).

type User struct {
	ID           int64   `json:"id" db:"id"`
	Username     string  `json:"username" db:"username" validate:"required"`
	Email        string  `json:"email" db:"email" validate:"required,email"`
	FirstName    string  `json:"first_name" db:"first_name"`
	LastName     string  `json:"last_name" db:"last_name"`
	PasswordHash string  `json:"-" db:"hashed_password"`
	Role         string  `json:"role,omitempty" db:"role"`
	PhoneNumber  *string `json:"phone_number,omitempty" db:"phone_number"`
	IsActive     bool    `json:"is_active" db:"is_active"`
	Created      int64   `json:"created" db:"created"`
}

// LearningStyleResult is one saved learning-style analysis. Rows are
// append-only; the newest row per user is the current result.
type LearningStyleResult struct {
	ID              int64    `json:"id" db:"id"`
	UserID          int64    `json:"user_id" db:"user_id"`
	Style           string   `json:"style" db:"style"`
	Description     string   `json:"description" db:"description"`
	Recommendations []string `json:"recommendations" db:"recommendations"`
	Created         int64    `json:"created" db:"created"`
}

// PersonalityResult is one saved personality analysis. Traits are kept as
// raw JSON values since clients send objects such as {"name":..,"score":..}.
type PersonalityResult struct {
	ID              int64             `json:"id" db:"id"`
	UserID          int64             `json:"user_id" db:"user_id"`
	Traits          []json.RawMessage `json:"traits" db:"traits"`
	Recommendations []string          `json:"recommendations" db:"recommendations"`
	Created         int64             `json:"created" db:"created"`
}

// LearningStyle is the per-user score snapshot (at most one row per user).
type LearningStyle struct {
	ID               int64  `json:"id" db:"id"`
	UserID           int64  `json:"user_id" db:"user_id"`
	VisualScore      int    `json:"visual_score" db:"visual_score"`
	AuditoryScore    int    `json:"auditory_score" db:"auditory_score"`
	KinestheticScore int    `json:"kinesthetic_score" db:"kinesthetic_score"`
	DominantStyle    string `json:"dominant_style" db:"dominant_style"`
	AssessmentDate   int64  `json:"assessment_date" db:"assessment_date"`
}

type LearningTest struct {
	ID       int64  `json:"id" db:"id"`
	UserID   int64  `json:"user_id" db:"user_id"`
	TestType string `json:"test_type" db:"test_type"`
	Score    int    `json:"score" db:"score"`
	TestDate int64  `json:"test_date" db:"test_date"`
}

type Recommendation struct {
	ID      int64  `json:"id" db:"id"`
	UserID  int64  `json:"user_id" db:"user_id"`
	Content string `json:"content" db:"content"`
	Created int64  `json:"created" db:"created"`
}
