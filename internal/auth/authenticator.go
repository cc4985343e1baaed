package auth

import (
	"context"
	"fmt"

	"github.com/garnizeh/learnprofile/internal/models"
)

// UserLookup is the subset of the user repository the authenticator needs.
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator resolves a bearer token to the stored user it names.
type Authenticator struct {
	issuer *Issuer
	users  UserLookup
}

func NewAuthenticator(issuer *Issuer, users UserLookup) *Authenticator {
	return &Authenticator{issuer: issuer, users: users}
}

// Authenticate returns ErrUnauthorized for a bad token or an unknown user.
// Storage failures are returned as-is.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*models.User, error) {
	username, err := a.issuer.ParseToken(token)
	if err != nil {
		return nil, err
	}

	u, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return nil, ErrUnauthorized
	}
	return u, nil
}

// Login checks a username and password pair and returns the matching user.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil || !VerifyPassword(password, u.PasswordHash) {
		return nil, ErrUnauthorized
	}
	return u, nil
}

// Issuer returns the token issuer backing this authenticator.
func (a *Authenticator) Issuer() *Issuer {
	return a.issuer
}
