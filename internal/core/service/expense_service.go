package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/expenser/expense-api/internal/core/domain"
	"github.com/expenser/expense-api/internal/core/ports"
)

type ExpenseService struct {
	repo   ports.ExpenseRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewExpenseService wires the service. idem may be nil, which disables
// Idempotency-Key handling.
func NewExpenseService(repo ports.ExpenseRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, idem: idem, logger: logger, now: time.Now}
}

func (s *ExpenseService) List(ctx context.Context, ownerID string, q ports.ExpenseQuery) ([]*domain.Expense, error) {
	filter, err := BuildExpenseFilter(ownerID, q, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, filter)
}

func (s *ExpenseService) Get(ctx context.Context, ownerID, id string) (*domain.Expense, error) {
	return s.repo.FindOne(ctx, ownerID, id)
}

// Create records an expense for in.OwnerID. If an idempotency key is provided
// and already seen for this owner, the earlier expense is returned without
// side effects.
func (s *ExpenseService) Create(ctx context.Context, in ports.CreateExpenseInput) (*ports.CreateExpenseResult, error) {
	if existing := s.replay(ctx, in.OwnerID, in.IdempotencyKey); existing != nil {
		return &ports.CreateExpenseResult{Expense: existing, AlreadyExisted: true}, nil
	}

	now := s.now().UTC()
	e := &domain.Expense{
		Amount:    in.Amount,
		Currency:  domain.Currency(in.Currency),
		Category:  domain.Category(in.Category),
		Date:      now,
		Note:      in.Note,
		UserID:    in.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if e.Currency == "" {
		e.Currency = domain.DefaultCurrency
	}
	if in.Date != nil {
		e.Date = in.Date.UTC()
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.OwnerID).Msg("failed to create expense")
		return nil, err
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, in.OwnerID, in.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("expense_id", created.ID).Str("user_id", in.OwnerID).Msg("expense created")
	return &ports.CreateExpenseResult{Expense: created}, nil
}

// replay returns the expense an earlier request with the same key created,
// or nil. Store failures are logged and treated as a miss.
func (s *ExpenseService) replay(ctx context.Context, ownerID, key string) *domain.Expense {
	if key == "" || s.idem == nil {
		return nil
	}
	id, found, err := s.idem.Lookup(ctx, ownerID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}
	existing, err := s.repo.FindOne(ctx, ownerID, id)
	if err != nil {
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("expense_id", id).Msg("idempotent replay")
	return existing
}

func (s *ExpenseService) Update(ctx context.Context, ownerID, id string, in ports.UpdateExpenseInput) (*domain.Expense, error) {
	patch := domain.ExpensePatch{
		Amount: in.Amount,
		Note:   in.Note,
		Date:   in.Date,
	}
	if in.Currency != nil {
		c := domain.Currency(*in.Currency)
		patch.Currency = &c
	}
	if in.Category != nil {
		c := domain.Category(*in.Category)
		patch.Category = &c
	}
	if patch.Date != nil {
		d := patch.Date.UTC()
		patch.Date = &d
	}

	current, err := s.repo.FindOne(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return current, nil
	}
	next := patch.Apply(*current)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("expense_id", id).Str("user_id", ownerID).Msg("expense updated")
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.logger.Info().Str("expense_id", id).Str("user_id", ownerID).Msg("expense deleted")
	return nil
}
