package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/expenser/expense-api/internal/core/domain"
	"github.com/expenser/expense-api/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Get hides deactivated accounts.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.Validationf("Name must not be empty")
		}
		update.Name = &name
	}
	if update.Email != nil {
		email := domain.NormalizeEmail(*update.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domain.Validationf("%q is not a valid email", *update.Email)
		}
		update.Email = &email
	}
	if update.Empty() {
		return s.Get(ctx, id)
	}

	u, err := s.repo.UpdateProfile(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("profile updated")
	return u, nil
}

func (s *UserService) Deactivate(ctx context.Context, id, password, passwordConfirm string) error {
	if password == "" || passwordConfirm == "" {
		return domain.Validationf("Password and password confirmation are required")
	}
	if password != passwordConfirm {
		return domain.ErrPasswordMismatch
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return domain.ErrWrongPassword
	}

	if err := s.repo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deactivated")
	return nil
}
