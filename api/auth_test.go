package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/garnizeh/learnprofile/api"
	"github.com/garnizeh/learnprofile/internal/auth"
	"github.com/garnizeh/learnprofile/internal/models"
	"github.com/garnizeh/learnprofile/pkg/repository/mock"
)

const testSecret = "testsecret"

func detailOf(t *testing.T, b []byte) string {
	t.Helper()
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(b, &e); err != nil {
		t.Fatalf("decode error body %s: %v", string(b), err)
	}
	return e.Detail
}

func TestRegisterHandler(t *testing.T) {
	valid := map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "pw123",
		"first_name": "Alice", "last_name": "Doe",
	}
	with := func(k, v string) map[string]string {
		m := map[string]string{}
		for kk, vv := range valid {
			m[kk] = vv
		}
		m[k] = v
		return m
	}

	tests := []struct {
		name       string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		checkBody  func(t *testing.T, body []byte)
	}{
		{
			name:       "InvalidRequest",
			body:       "not a json object",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingUsername",
			body:       with("username", ""),
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, b []byte) {
				if d := detailOf(t, b); !strings.Contains(d, "username") {
					t.Fatalf("expected username in detail, got %q", d)
				}
			},
		},
		{
			name:       "BadEmail",
			body:       with("email", "not-an-email"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingPassword",
			body:       with("password", ""),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Success",
			body:       valid,
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				var tr struct {
					AccessToken string `json:"access_token"`
					TokenType   string `json:"token_type"`
				}
				if err := json.Unmarshal(b, &tr); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if tr.TokenType != "bearer" {
					t.Fatalf("unexpected token type %q", tr.TokenType)
				}
				sub, err := auth.NewIssuer(testSecret, time.Hour).ParseToken(tr.AccessToken)
				if err != nil || sub != "alice" {
					t.Fatalf("token subject = %q, %v", sub, err)
				}
			},
		},
		{
			name: "DuplicateEmail",
			body: with("username", "alice2"),
			prepare: func(m *mock.Mocks) {
				_, _ = m.UserRepo.CreateUser(context.Background(), &models.User{Username: "other", Email: "alice@x.com"})
			},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, b []byte) {
				if d := detailOf(t, b); d != "Bu email adresi zaten kullanımda" {
					t.Fatalf("unexpected detail %q", d)
				}
			},
		},
		{
			name: "DuplicateUsername",
			body: with("email", "new@x.com"),
			prepare: func(m *mock.Mocks) {
				_, _ = m.UserRepo.CreateUser(context.Background(), &models.User{Username: "alice", Email: "old@x.com"})
			},
			wantStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, b []byte) {
				if d := detailOf(t, b); d != "Bu kullanıcı adı zaten kullanımda" {
					t.Fatalf("unexpected detail %q", d)
				}
			},
		},
		{
			name:       "StorageFailure",
			body:       valid,
			prepare:    func(m *mock.Mocks) { m.UserRepo.CreateErr = errors.New("disk full") },
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}
			authn := auth.NewAuthenticator(auth.NewIssuer(testSecret, time.Hour), mocks.UserRepo)
			handler := api.NewAuthHandler(mocks.UserRepo, authn)

			b, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(b))
			w := httptest.NewRecorder()
			handler.Register(w, req)

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("%s: expected status %d got %d body=%s", tt.name, tt.wantStatus, res.StatusCode, string(data))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, data)
			}
		})
	}
}

func TestRegisterHandler_StoresUserRole(t *testing.T) {
	mocks := mock.NewMocks()
	authn := auth.NewAuthenticator(auth.NewIssuer(testSecret, time.Hour), mocks.UserRepo)
	handler := api.NewAuthHandler(mocks.UserRepo, authn)

	body := `{"username":"bob","email":"bob@x.com","password":"pw","first_name":"Bob","last_name":"B"}`
	w := httptest.NewRecorder()
	handler.Register(w, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	u, _ := mocks.UserRepo.GetUserByUsername(context.Background(), "bob")
	if u == nil || u.Role != "user" || !u.IsActive {
		t.Fatalf("unexpected stored user %#v", u)
	}
	if u.PasswordHash == "pw" || !auth.VerifyPassword("pw", u.PasswordHash) {
		t.Fatalf("password not hashed with bcrypt")
	}
}

func TestTokenHandler(t *testing.T) {
	hash, err := auth.HashPassword("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name       string
		form       url.Values
		getErr     error
		wantStatus int
	}{
		{name: "Success", form: url.Values{"username": {"alice"}, "password": {"pw123"}}, wantStatus: http.StatusOK},
		{name: "WrongPassword", form: url.Values{"username": {"alice"}, "password": {"nope"}}, wantStatus: http.StatusUnauthorized},
		{name: "UnknownUser", form: url.Values{"username": {"bob"}, "password": {"pw123"}}, wantStatus: http.StatusUnauthorized},
		{name: "MissingPassword", form: url.Values{"username": {"alice"}}, wantStatus: http.StatusBadRequest},
		{name: "StorageFailure", form: url.Values{"username": {"alice"}, "password": {"pw123"}}, getErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			_, _ = mocks.UserRepo.CreateUser(context.Background(), &models.User{Username: "alice", Email: "a@x.io", PasswordHash: hash})
			mocks.UserRepo.GetErr = tt.getErr
			authn := auth.NewAuthenticator(auth.NewIssuer(testSecret, time.Hour), mocks.UserRepo)
			handler := api.NewAuthHandler(mocks.UserRepo, authn)

			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			handler.Token(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if w.Header().Get("WWW-Authenticate") != "Bearer" {
					t.Fatalf("expected WWW-Authenticate header")
				}
				if strings.Contains(w.Body.String(), "access_token") {
					t.Fatalf("no token may be issued on failure")
				}
			}
		})
	}
}

func TestCreateSampleUserHandler(t *testing.T) {
	mocks := mock.NewMocks()
	authn := auth.NewAuthenticator(auth.NewIssuer(testSecret, time.Hour), mocks.UserRepo)
	handler := api.NewAuthHandler(mocks.UserRepo, authn)

	w := httptest.NewRecorder()
	handler.CreateSampleUser(w, httptest.NewRequest(http.MethodPost, "/create-sample-user", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
		User    struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Username != "testuser" || resp.User.Email != "test@example.com" || resp.Message == "" {
		t.Fatalf("unexpected response %#v", resp)
	}

	u, _ := mocks.UserRepo.GetUserByUsername(context.Background(), "testuser")
	if u == nil || u.Role != "student" || !auth.VerifyPassword("test123", u.PasswordHash) {
		t.Fatalf("unexpected sample user %#v", u)
	}

	// second call collides and reports 400
	w = httptest.NewRecorder()
	handler.CreateSampleUser(w, httptest.NewRequest(http.MethodPost, "/create-sample-user", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on repeat, got %d", w.Code)
	}
}
