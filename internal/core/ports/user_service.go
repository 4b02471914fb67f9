package ports

import (
	"context"

	"github.com/expenser/expense-api/internal/core/domain"
)

// UserService defines account management use cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	// Deactivate soft-deletes the account after re-checking the password.
	Deactivate(ctx context.Context, id, password, passwordConfirm string) error
}
