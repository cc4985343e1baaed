package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/garnizeh/learnprofile/internal/models"
	"github.com/garnizeh/learnprofile/pkg/repository"
)

// ResultsHandler serves the learning-style and personality result endpoints.
type ResultsHandler struct {
	learning    repository.LearningStyleResultRepo
	personality repository.PersonalityResultRepo
}

func NewResultsHandler(lr repository.LearningStyleResultRepo, pr repository.PersonalityResultRepo) *ResultsHandler {
	return &ResultsHandler{learning: lr, personality: pr}
}

type learningStyleResponse struct {
	Style           string   `json:"style"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

type personalityResponse struct {
	Traits          []json.RawMessage `json:"traits"`
	Recommendations []string          `json:"recommendations"`
}

type saveLearningStyleRequest struct {
	Style           string   `json:"style"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

type savePersonalityRequest struct {
	Traits          []json.RawMessage `json:"traits"`
	Recommendations []string          `json:"recommendations"`
}

func (h *ResultsHandler) GetLearningStyle(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	res, err := h.learning.GetLatestLearningStyleResult(r.Context(), user.ID)
	if err != nil {
		logger.Error("failed to load learning style", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Öğrenme stili sonuçları alınırken bir hata oluştu")
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "Öğrenme stili sonucu bulunamadı")
		return
	}

	writeJSON(w, http.StatusOK, learningStyleResponse{
		Style:           res.Style,
		Description:     res.Description,
		Recommendations: nonNil(res.Recommendations),
	})
}

func (h *ResultsHandler) GetPersonalityAnalysis(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	res, err := h.personality.GetLatestPersonalityResult(r.Context(), user.ID)
	if err != nil {
		logger.Error("failed to load personality analysis", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Kişilik analizi sonuçları alınırken bir hata oluştu")
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "Kişilik analizi sonucu bulunamadı")
		return
	}

	writeJSON(w, http.StatusOK, personalityResponse{
		Traits:          nonNil(res.Traits),
		Recommendations: nonNil(res.Recommendations),
	})
}

func (h *ResultsHandler) SaveLearningStyle(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := validatePayload(r.Context(), learningStyleSchema, body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req saveLearningStyleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	res := &models.LearningStyleResult{
		UserID:          user.ID,
		Style:           req.Style,
		Description:     req.Description,
		Recommendations: nonNil(req.Recommendations),
	}
	if _, err := h.learning.CreateLearningStyleResult(r.Context(), res); err != nil {
		logger.Error("failed to save learning style", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Öğrenme stili sonucu kaydedilirken bir hata oluştu")
		return
	}

	logger.Info("learning style saved", slog.Int64("user_id", user.ID), slog.Int64("id", res.ID))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Öğrenme stili sonucu başarıyla kaydedildi"})
}

func (h *ResultsHandler) SavePersonalityAnalysis(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := validatePayload(r.Context(), personalitySchema, body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req savePersonalityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	res := &models.PersonalityResult{
		UserID:          user.ID,
		Traits:          nonNil(req.Traits),
		Recommendations: nonNil(req.Recommendations),
	}
	if _, err := h.personality.CreatePersonalityResult(r.Context(), res); err != nil {
		logger.Error("failed to save personality analysis", slog.Int64("user_id", user.ID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Kişilik analizi sonucu kaydedilirken bir hata oluştu")
		return
	}

	logger.Info("personality analysis saved", slog.Int64("user_id", user.ID), slog.Int64("id", res.ID))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Kişilik analizi sonucu başarıyla kaydedildi"})
}

// nonNil makes sure lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
