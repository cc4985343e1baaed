package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/garnizeh/learnprofile/internal/content"
)

// ContentGenerator produces formatted text for a user prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type ContentHandler struct {
	gen ContentGenerator
}

func NewContentHandler(gen ContentGenerator) *ContentHandler {
	return &ContentHandler{gen: gen}
}

type contentRequest struct {
	Prompt string `json:"prompt"`
}

type contentResponse struct {
	Content string `json:"content"`
}

func (h *ContentHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	text, err := h.gen.GenerateContent(r.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, content.ErrEmptyPrompt) {
			writeError(w, http.StatusBadRequest, "Prompt boş olamaz")
			return
		}
		logger.Error("content generation failed", slog.String("request_id", RequestIDFromContext(r.Context())), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "İçerik üretilirken bir hata oluştu")
		return
	}

	writeJSON(w, http.StatusOK, contentResponse{Content: text})
}
