package ports

import (
	"context"
	"time"

	"github.com/expenser/expense-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a user and returns it with its assigned ID.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns the active user with the given (normalised) email,
	// including its password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns the user regardless of its active flag.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns every active user.
	List(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	// SoftDelete marks an active user inactive.
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
