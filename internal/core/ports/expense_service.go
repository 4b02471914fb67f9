package ports

import (
	"context"
	"time"

	"github.com/expenser/expense-api/internal/core/domain"
)

// ExpenseQuery carries the raw listing parameters as received from the client.
type ExpenseQuery struct {
	Period    string // days | weeks | months | custom
	Value     string // period length; defaults depend on Period
	StartDate string // custom only
	EndDate   string // custom only
	Category  string
	Currency  string
	MinAmount string
	MaxAmount string
}

// CreateExpenseInput carries all data needed to record an expense.
type CreateExpenseInput struct {
	OwnerID  string
	Amount   float64
	Currency string // empty = domain.DefaultCurrency
	Category string
	Note     string
	Date     *time.Time // nil = now
	// IdempotencyKey, when set, makes retries of the same request return the
	// expense created by the first attempt.
	IdempotencyKey string
}

// CreateExpenseResult is returned by Create.
type CreateExpenseResult struct {
	Expense *domain.Expense
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// UpdateExpenseInput is a partial update; nil fields are left untouched.
type UpdateExpenseInput struct {
	Amount   *float64
	Currency *string
	Category *string
	Note     *string
	Date     *time.Time
}

// ExpenseService defines expense use cases. ownerID is always the
// authenticated caller.
type ExpenseService interface {
	List(ctx context.Context, ownerID string, query ExpenseQuery) ([]*domain.Expense, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Expense, error)
	Create(ctx context.Context, input CreateExpenseInput) (*CreateExpenseResult, error)
	Update(ctx context.Context, ownerID, id string, input UpdateExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, ownerID, id string) error
}
