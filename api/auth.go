package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/garnizeh/learnprofile/internal/auth"
	"github.com/garnizeh/learnprofile/internal/models"
	"github.com/garnizeh/learnprofile/pkg/repository"
)

type AuthHandler struct {
	users    repository.UserRepo
	authn    *auth.Authenticator
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(users repository.UserRepo, authn *auth.Authenticator) *AuthHandler {
	return &AuthHandler{users: users, authn: authn, validate: newValidator()}
}

type registerRequest struct {
	Username    string  `json:"username" validate:"required,max=50"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required"`
	FirstName   string  `json:"first_name" validate:"max=100"`
	LastName    string  `json:"last_name" validate:"max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) issue(w http.ResponseWriter, username string) {
	token, err := h.authn.Issuer().IssueToken(username)
	if err != nil {
		logger.Error("failed to sign token", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Error signing token")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Register creates a user with role "user" and returns a token for it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationDetail(err))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	u := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         "user",
		PhoneNumber:  req.PhoneNumber,
		IsActive:     true,
	}
	if _, err := h.users.CreateUser(r.Context(), u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "Bu email adresi zaten kullanımda")
		case errors.Is(err, repository.ErrDuplicateUsername), errors.Is(err, repository.ErrConflict):
			writeError(w, http.StatusBadRequest, "Bu kullanıcı adı zaten kullanımda")
		default:
			logger.Error("failed to create user", slog.Any("err", err))
			writeError(w, http.StatusInternalServerError, "Kayıt işlemi sırasında bir hata oluştu")
		}
		return
	}

	logger.Info("user registered", slog.Int64("user_id", u.ID), slog.String("username", u.Username))
	h.issue(w, u.Username)
}

// Token exchanges form-encoded credentials for a bearer token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form")
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	u, err := h.authn.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			writeUnauthorized(w, "Incorrect username or password")
			return
		}
		logger.Error("login failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Giriş işlemi sırasında bir hata oluştu")
		return
	}

	h.issue(w, u.Username)
}

type sampleUserResponse struct {
	Message string `json:"message"`
	User    struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

// CreateSampleUser inserts the fixed demo account.
func (h *AuthHandler) CreateSampleUser(w http.ResponseWriter, r *http.Request) {
	hash, err := auth.HashPassword("test123")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Kullanıcı oluşturulurken hata oluştu: %v", err))
		return
	}

	u := &models.User{
		Username:     "testuser",
		Email:        "test@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		Role:         "student",
		IsActive:     true,
	}
	if _, err := h.users.CreateUser(r.Context(), u); err != nil {
		logger.Warn("failed to create sample user", slog.Any("err", err))
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Kullanıcı oluşturulurken hata oluştu: %v", err))
		return
	}

	var resp sampleUserResponse
	resp.Message = "Örnek kullanıcı başarıyla oluşturuldu"
	resp.User.Username = u.Username
	resp.User.Email = u.Email
	writeJSON(w, http.StatusOK, resp)
}
