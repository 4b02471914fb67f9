package ports

import (
	"context"
	"time"

	"github.com/expenser/expense-api/internal/core/domain"
)

// PasswordHasher hashes and verifies secrets.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenService issues and verifies stateless identity tokens.
type TokenService interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	// Verify returns the user ID the token was issued for, or
	// domain.ErrInvalidToken.
	Verify(token string) (string, error)
}

// SignupInput carries the fields of a registration request.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
