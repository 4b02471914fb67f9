package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/expenser/expense-api/internal/core/domain"
	"github.com/expenser/expense-api/internal/core/ports"
)

type stubExpenseService struct {
	listFn   func(ctx context.Context, ownerID string, q ports.ExpenseQuery) ([]*domain.Expense, error)
	getFn    func(ctx context.Context, ownerID, id string) (*domain.Expense, error)
	createFn func(ctx context.Context, in ports.CreateExpenseInput) (*ports.CreateExpenseResult, error)
	updateFn func(ctx context.Context, ownerID, id string, in ports.UpdateExpenseInput) (*domain.Expense, error)
	deleteFn func(ctx context.Context, ownerID, id string) error
}

func (s *stubExpenseService) List(ctx context.Context, ownerID string, q ports.ExpenseQuery) ([]*domain.Expense, error) {
	return s.listFn(ctx, ownerID, q)
}

func (s *stubExpenseService) Get(ctx context.Context, ownerID, id string) (*domain.Expense, error) {
	return s.getFn(ctx, ownerID, id)
}

func (s *stubExpenseService) Create(ctx context.Context, in ports.CreateExpenseInput) (*ports.CreateExpenseResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubExpenseService) Update(ctx context.Context, ownerID, id string, in ports.UpdateExpenseInput) (*domain.Expense, error) {
	return s.updateFn(ctx, ownerID, id, in)
}

func (s *stubExpenseService) Delete(ctx context.Context, ownerID, id string) error {
	return s.deleteFn(ctx, ownerID, id)
}

func sampleExpense(id string) *domain.Expense {
	return &domain.Expense{
		ID:       id,
		Amount:   20,
		Currency: domain.CurrencyUSD,
		Category: domain.CategoryGroceries,
		Date:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		UserID:   alice.ID,
	}
}

func TestExpenseHandler_Create_Success(t *testing.T) {
	stub := &stubExpenseService{
		createFn: func(_ context.Context, in ports.CreateExpenseInput) (*ports.CreateExpenseResult, error) {
			if in.OwnerID != alice.ID {
				t.Fatalf("owner must be the caller, got %q", in.OwnerID)
			}
			if in.Amount != 20 || in.Category != "Groceries" || in.Currency != "USD" || in.Note != "weekly shop" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Date == nil || !in.Date.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected date: %v", in.Date)
			}
			return &ports.CreateExpenseResult{Expense: sampleExpense("e1")}, nil
		},
	}

	c, rec := authedContext(http.MethodPost, "/expenses",
		`{"amount":20,"currency":"USD","category":"Groceries","date":"2024-01-10","note":"weekly shop","user":"someone-else"}`)
	if err := NewExpenseHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	expense := dataField(t, decode(t, rec), "expense")
	if expense["id"] != "e1" || expense["user"] != alice.ID {
		t.Fatalf("unexpected expense payload: %+v", expense)
	}
}

func TestExpenseHandler_Create_IdempotentReplay(t *testing.T) {
	stub := &stubExpenseService{
		createFn: func(_ context.Context, in ports.CreateExpenseInput) (*ports.CreateExpenseResult, error) {
			if in.IdempotencyKey != "abc-123" {
				t.Fatalf("idempotency key not forwarded: %q", in.IdempotencyKey)
			}
			return &ports.CreateExpenseResult{Expense: sampleExpense("e1"), AlreadyExisted: true}, nil
		},
	}

	c, rec := authedContext(http.MethodPost, "/expenses", `{"amount":20,"category":"Groceries"}`)
	c.Request().Header.Set(HeaderIdempotencyKey, "abc-123")
	if err := NewExpenseHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestExpenseHandler_Create_Validation(t *testing.T) {
	stub := &stubExpenseService{
		createFn: func(context.Context, ports.CreateExpenseInput) (*ports.CreateExpenseResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	bodies := map[string]string{
		"missing amount":   `{"category":"Groceries"}`,
		"negative amount":  `{"amount":-1,"category":"Groceries"}`,
		"missing category": `{"amount":1}`,
		"unknown category": `{"amount":1,"category":"Travel"}`,
		"unknown currency": `{"amount":1,"category":"Groceries","currency":"BTC"}`,
		"bad date":         `{"amount":1,"category":"Groceries","date":"10/01/2024"}`,
	}

	for name, body := range bodies {
		c, _ := authedContext(http.MethodPost, "/expenses", body)
		if err := NewExpenseHandler(stub).Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestExpenseHandler_Create_RequiresUser(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/expenses", `{"amount":1,"category":"Groceries"}`)

	if err := NewExpenseHandler(&stubExpenseService{}).Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestExpenseHandler_List_ForwardsQuery(t *testing.T) {
	stub := &stubExpenseService{
		listFn: func(_ context.Context, ownerID string, q ports.ExpenseQuery) ([]*domain.Expense, error) {
			want := ports.ExpenseQuery{
				Period: "custom", StartDate: "2024-01-01", EndDate: "2024-01-31",
				Category: "Groceries", MinAmount: "10", MaxAmount: "50",
			}
			if ownerID != alice.ID || q != want {
				t.Fatalf("unexpected args: %s %+v", ownerID, q)
			}
			return []*domain.Expense{sampleExpense("e2"), sampleExpense("e1")}, nil
		},
	}

	c, rec := authedContext(http.MethodGet,
		"/expenses?period=custom&startDate=2024-01-01&endDate=2024-01-31&category=Groceries&minAmount=10&maxAmount=50", "")
	if err := NewExpenseHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := decode(t, rec)
	if body["results"] != float64(2) {
		t.Fatalf("expected results=2, got %v", body["results"])
	}
	data := body["data"].(map[string]any)
	if list, ok := data["expenses"].([]any); !ok || len(list) != 2 {
		t.Fatalf("unexpected expenses payload: %+v", data)
	}
}

func TestExpenseHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubExpenseService{
		listFn: func(context.Context, string, ports.ExpenseQuery) ([]*domain.Expense, error) {
			return []*domain.Expense{}, nil
		},
	}

	c, rec := authedContext(http.MethodGet, "/expenses", "")
	if err := NewExpenseHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	data := decode(t, rec)["data"].(map[string]any)
	if list, ok := data["expenses"].([]any); !ok || len(list) != 0 {
		t.Fatalf("expected empty array, got %+v", data["expenses"])
	}
}

func TestExpenseHandler_Get_NotFound(t *testing.T) {
	stub := &stubExpenseService{
		getFn: func(_ context.Context, ownerID, id string) (*domain.Expense, error) {
			if ownerID != alice.ID || id != "e9" {
				t.Fatalf("unexpected args: %s %s", ownerID, id)
			}
			return nil, domain.ErrExpenseNotFound
		},
	}

	c, _ := authedContext(http.MethodGet, "/expenses/e9", "")
	if err := NewExpenseHandler(stub).Get(withParam(c, "id", "e9")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExpenseHandler_Update_Partial(t *testing.T) {
	stub := &stubExpenseService{
		updateFn: func(_ context.Context, ownerID, id string, in ports.UpdateExpenseInput) (*domain.Expense, error) {
			if ownerID != alice.ID || id != "e1" {
				t.Fatalf("unexpected args: %s %s", ownerID, id)
			}
			if in.Amount == nil || *in.Amount != 35 || in.Category != nil || in.Currency != nil || in.Date != nil {
				t.Fatalf("only amount should be set: %+v", in)
			}
			e := sampleExpense("e1")
			e.Amount = 35
			return e, nil
		},
	}

	c, rec := authedContext(http.MethodPatch, "/expenses/e1", `{"amount":35}`)
	if err := NewExpenseHandler(stub).Update(withParam(c, "id", "e1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := dataField(t, decode(t, rec), "expense")["amount"]; got != float64(35) {
		t.Fatalf("expected amount 35, got %v", got)
	}
}

func TestExpenseHandler_Update_Validation(t *testing.T) {
	stub := &stubExpenseService{
		updateFn: func(context.Context, string, string, ports.UpdateExpenseInput) (*domain.Expense, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	for _, body := range []string{`{"amount":-3}`, `{"category":"Travel"}`, `{"currency":"XXX"}`, `{"date":"soon"}`} {
		c, _ := authedContext(http.MethodPatch, "/expenses/e1", body)
		if err := NewExpenseHandler(stub).Update(withParam(c, "id", "e1")); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", body, err)
		}
	}
}

func TestExpenseHandler_Delete(t *testing.T) {
	var deleted string
	stub := &stubExpenseService{
		deleteFn: func(_ context.Context, ownerID, id string) error {
			if ownerID != alice.ID {
				t.Fatalf("owner must be the caller, got %q", ownerID)
			}
			deleted = id
			return nil
		},
	}

	c, rec := authedContext(http.MethodDelete, "/expenses/e1", "")
	if err := NewExpenseHandler(stub).Delete(withParam(c, "id", "e1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != "e1" {
		t.Fatalf("expected 204 and delete of e1, got %d %q", rec.Code, deleted)
	}
}
