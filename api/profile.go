package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/garnizeh/learnprofile/internal/models"
	"github.com/garnizeh/learnprofile/pkg/repository"
)

// ProfileHandler serves the score snapshot, test history and saved
// recommendation endpoints.
type ProfileHandler struct {
	styles   repository.LearningStyleRepo
	tests    repository.LearningTestRepo
	recs     repository.RecommendationRepo
	validate *validator.Validate
}

func NewProfileHandler(styles repository.LearningStyleRepo, tests repository.LearningTestRepo, recs repository.RecommendationRepo) *ProfileHandler {
	return &ProfileHandler{styles: styles, tests: tests, recs: recs, validate: newValidator()}
}

type learningStyleScoresRequest struct {
	VisualScore      *int   `json:"visual_score" validate:"required,min=0"`
	AuditoryScore    *int   `json:"auditory_score" validate:"required,min=0"`
	KinestheticScore *int   `json:"kinesthetic_score" validate:"required,min=0"`
	DominantStyle    string `json:"dominant_style" validate:"omitempty,oneof=visual auditory kinesthetic"`
}

type learningTestRequest struct {
	TestType string `json:"test_type" validate:"required,max=50"`
	Score    *int   `json:"score" validate:"required"`
}

type recommendationRequest struct {
	Content string `json:"content" validate:"required"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

// dominantStyle picks the highest score; ties resolve in visual, auditory,
// kinesthetic order.
func dominantStyle(visual, auditory, kinesthetic int) string {
	style, best := "visual", visual
	if auditory > best {
		style, best = "auditory", auditory
	}
	if kinesthetic > best {
		style = "kinesthetic"
	}
	return style
}

func (h *ProfileHandler) SaveScores(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	var req learningStyleScoresRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	req.DominantStyle = strings.ToLower(strings.TrimSpace(req.DominantStyle))
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationDetail(err))
		return
	}
	if req.DominantStyle == "" {
		req.DominantStyle = dominantStyle(*req.VisualScore, *req.AuditoryScore, *req.KinestheticScore)
	}

	ls := &models.LearningStyle{
		UserID:           user.ID,
		VisualScore:      *req.VisualScore,
		AuditoryScore:    *req.AuditoryScore,
		KinestheticScore: *req.KinestheticScore,
		DominantStyle:    req.DominantStyle,
	}
	if _, err := h.styles.UpsertLearningStyle(r.Context(), ls); err != nil {
		logger.Error("failed to save learning style scores", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, ls)
}

func (h *ProfileHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	ls, err := h.styles.GetLearningStyleByUser(r.Context(), user.ID)
	if err != nil {
		logger.Error("failed to load learning style scores", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if ls == nil {
		writeError(w, http.StatusNotFound, "Öğrenme stili puanı bulunamadı")
		return
	}

	writeJSON(w, http.StatusOK, ls)
}

func (h *ProfileHandler) CreateTest(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	var req learningTestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	req.TestType = strings.TrimSpace(req.TestType)
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationDetail(err))
		return
	}

	id, err := h.tests.CreateLearningTest(r.Context(), &models.LearningTest{UserID: user.ID, TestType: req.TestType, Score: *req.Score})
	if err != nil {
		logger.Error("failed to save learning test", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *ProfileHandler) ListTests(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	items, err := h.tests.ListLearningTestsByUser(r.Context(), user.ID)
	if err != nil {
		logger.Error("failed to list learning tests", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, listResponse[models.LearningTest]{Items: nonNil(items)})
}

func (h *ProfileHandler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	var req recommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationDetail(err))
		return
	}

	id, err := h.recs.CreateRecommendation(r.Context(), &models.Recommendation{UserID: user.ID, Content: req.Content})
	if err != nil {
		logger.Error("failed to save recommendation", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *ProfileHandler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	items, err := h.recs.ListRecommendationsByUser(r.Context(), user.ID)
	if err != nil {
		logger.Error("failed to list recommendations", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, listResponse[models.Recommendation]{Items: nonNil(items)})
}
