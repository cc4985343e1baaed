package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/learnprofile/internal/auth"
	"github.com/garnizeh/learnprofile/internal/models"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, auth.VerifyPassword("s3cret!", hash))
	assert.False(t, auth.VerifyPassword("wrong", hash))
	assert.False(t, auth.VerifyPassword("s3cret!", "not-a-bcrypt-hash"))
}

func TestTokenExpiry(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issued}
	issuer := auth.NewIssuer("secret", auth.DefaultTokenTTL, auth.WithClock(clock.Now))

	token, err := issuer.IssueToken("alice")
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{name: "immediately", at: issued},
		{name: "just before expiry", at: issued.Add(23*time.Hour + 59*time.Minute)},
		{name: "just after expiry", at: issued.Add(24*time.Hour + time.Minute), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.t = tt.at
			sub, err := issuer.ParseToken(token)
			if tt.wantErr {
				require.ErrorIs(t, err, auth.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", sub)
		})
	}
}

func TestParseTokenRejects(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	other := auth.NewIssuer("other-secret", time.Hour)

	foreign, err := other.IssueToken("alice")
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not.a.token",
		"empty":          "",
		"wrong secret":   foreign,
		"missing sub":    noSub,
		"missing exp":    noExp,
		"other hmac alg": hs512,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.ParseToken(token)
			assert.ErrorIs(t, err, auth.ErrUnauthorized)
		})
	}
}

type stubUsers struct {
	users map[string]*models.User
	err   error
}

func (s *stubUsers) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[username], nil
}

func TestAuthenticator(t *testing.T) {
	ctx := context.Background()
	issuer := auth.NewIssuer("secret", time.Hour)
	hash, err := auth.HashPassword("pw1")
	require.NoError(t, err)
	users := &stubUsers{users: map[string]*models.User{
		"alice": {ID: 1, Username: "alice", PasswordHash: hash},
	}}
	a := auth.NewAuthenticator(issuer, users)

	token, err := issuer.IssueToken("alice")
	require.NoError(t, err)
	u, err := a.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	ghost, err := issuer.IssueToken("ghost")
	require.NoError(t, err)
	_, err = a.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	u, err = a.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = a.Login(ctx, "alice", "bad")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
	_, err = a.Login(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	dbErr := errors.New("db down")
	users.err = dbErr
	_, err = a.Authenticate(ctx, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, auth.ErrUnauthorized)
}
