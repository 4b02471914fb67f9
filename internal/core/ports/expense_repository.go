package ports

import (
	"context"

	"github.com/expenser/expense-api/internal/core/domain"
)

// ExpenseRepository defines persistence operations for expenses.
// Every lookup is scoped by owner: a record owned by someone else is
// reported as domain.ErrExpenseNotFound, exactly like a missing one.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	FindOne(ctx context.Context, ownerID, id string) (*domain.Expense, error)
	// Find returns the expenses matching filter, newest first.
	Find(ctx context.Context, filter domain.ExpenseFilter) ([]*domain.Expense, error)
	Update(ctx context.Context, ownerID, id string, patch domain.ExpensePatch) (*domain.Expense, error)
	Delete(ctx context.Context, ownerID, id string) error
}
