package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/expenser/expense-api/internal/api/handler"
	"github.com/expenser/expense-api/internal/api/middleware"
	"github.com/expenser/expense-api/internal/core/domain"
	"github.com/expenser/expense-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type fakeTokens struct{}

func (fakeTokens) Issue(userID string) (string, time.Time, error) {
	return "tok-" + userID, time.Now().Add(time.Hour), nil
}

func (fakeTokens) Verify(token string) (string, error) {
	if !strings.HasPrefix(token, "tok-") {
		return "", domain.ErrInvalidToken
	}
	return strings.TrimPrefix(token, "tok-"), nil
}

type fakeUsers map[string]*domain.User

func (f fakeUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f fakeUsers) List(context.Context) ([]*domain.User, error) { return nil, nil }

func (f fakeUsers) Get(ctx context.Context, id string) (*domain.User, error) {
	return f.FindByID(ctx, id)
}

func (f fakeUsers) UpdateProfile(_ context.Context, id string, u domain.UserUpdate) (*domain.User, error) {
	user := *f[id]
	if u.Name != nil {
		user.Name = *u.Name
	}
	return &user, nil
}

func (f fakeUsers) Deactivate(context.Context, string, string, string) error { return nil }

type fakeExpenses struct {
	owners []string
}

func (f *fakeExpenses) List(_ context.Context, ownerID string, _ ports.ExpenseQuery) ([]*domain.Expense, error) {
	f.owners = append(f.owners, ownerID)
	return []*domain.Expense{{ID: "e1", UserID: ownerID, Amount: 5, Currency: domain.CurrencyNGN, Category: domain.CategoryOthers}}, nil
}

func (f *fakeExpenses) Get(context.Context, string, string) (*domain.Expense, error) {
	return nil, domain.ErrExpenseNotFound
}

func (f *fakeExpenses) Create(context.Context, ports.CreateExpenseInput) (*ports.CreateExpenseResult, error) {
	return nil, nil
}

func (f *fakeExpenses) Update(context.Context, string, string, ports.UpdateExpenseInput) (*domain.Expense, error) {
	return nil, nil
}

func (f *fakeExpenses) Delete(context.Context, string, string) error { return nil }

type fakeAuth struct{}

func (fakeAuth) Signup(context.Context, ports.SignupInput) (*domain.User, error) {
	return nil, domain.Validationf("Fill in all required information")
}

func (fakeAuth) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func newTestRouter(t *testing.T) (*echo.Echo, *fakeExpenses) {
	t.Helper()
	users := fakeUsers{
		"u1": {ID: "u1", Name: "Alice", Active: true},
		"u2": {ID: "u2", Name: "Bob", Active: true},
	}
	expenses := &fakeExpenses{}
	reg := prometheus.NewRegistry()

	e := NewRouter(Deps{
		Logger:     zerolog.Nop(),
		Production: true,
		Auth:       fakeAuth{},
		Users:      users,
		Expenses:   expenses,
		Tokens:     fakeTokens{},
		UserLookup: users,
		HealthChecks: map[string]handler.Check{
			"mongodb": func(context.Context) error { return nil },
		},
		Registerer: reg,
		Gatherer:   reg,
	})
	return e, expenses
}

func serve(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRouter_ProtectedRoutesRequireLogin(t *testing.T) {
	e, expenses := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/expenses"},
		{http.MethodPost, "/expenses"},
		{http.MethodGet, "/expenses/e1"},
		{http.MethodPatch, "/expenses/e1"},
		{http.MethodDelete, "/expenses/e1"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/u1"},
		{http.MethodPatch, "/users/me"},
		{http.MethodDelete, "/users/me"},
	} {
		rec := serve(e, route.method, route.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
			continue
		}
		if body := envelope(t, rec); body["status"] != "fail" || body["message"] == "" {
			t.Errorf("%s %s: unexpected body %+v", route.method, route.path, body)
		}
	}
	if len(expenses.owners) != 0 {
		t.Fatal("handlers must not run without a valid token")
	}
}

func TestRouter_TamperedTokenRejected(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/expenses", "", "forged")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_AuthenticatedListIsScopedToCaller(t *testing.T) {
	e, expenses := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/expenses?period=days", "", "tok-u2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(expenses.owners) != 1 || expenses.owners[0] != "u2" {
		t.Fatalf("expected list for u2, got %v", expenses.owners)
	}
	if body := envelope(t, rec); body["status"] != "success" || body["results"] != float64(1) {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRouter_UserMutationsOnlyOnSelf(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, http.MethodPatch, "/users/u2", `{"name":"Mallory"}`, "tok-u1")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	rec = serve(e, http.MethodPatch, "/users/me", `{"name":"Alicia"}`, "tok-u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(e, http.MethodDelete, "/users/u1", `{"password":"pass1234","passwordConfirm":"pass1234"}`, "tok-u1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRouter_DomainErrorsRendered(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/expenses/e404", "", "tok-u1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := envelope(t, rec); body["message"] != "No expense found with that ID" {
		t.Fatalf("unexpected body %+v", body)
	}

	rec = serve(e, http.MethodPost, "/login", `{"email":"a@example.com","password":"x"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = serve(e, http.MethodPost, "/signup", `{}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := envelope(t, rec); body["status"] != "fail" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := serve(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}

	rec := serve(e, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "requests_total") {
		t.Fatalf("expected echo request metrics in exposition")
	}
}
