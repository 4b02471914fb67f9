package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expenser/expense-api/internal/api/metrics"
	"github.com/expenser/expense-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry POST /expenses safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// ExpenseHandler serves the caller's expenses. Every operation is scoped to
// the authenticated user.
type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// List handles GET /expenses.
//
// @Summary      List own expenses, newest first
// @Tags         expenses
// @Produce      json
// @Security     CookieAuth
// @Param        period     query     string  false  "days | weeks | months | custom"
// @Param        value      query     int     false  "Period length (days=7, weeks=1, months=1 by default)"
// @Param        startDate  query     string  false  "custom period start (YYYY-MM-DD or RFC 3339)"
// @Param        endDate    query     string  false  "custom period end, inclusive"
// @Param        category   query     string  false  "Exact category"
// @Param        currency   query     string  false  "Exact currency"
// @Param        minAmount  query     number  false  "Inclusive lower bound"
// @Param        maxAmount  query     number  false  "Inclusive upper bound"
// @Success      200        {object}  successResponse{data=expensesData}
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	expenses, err := h.service.List(c.Request().Context(), caller.ID, toExpenseQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successList(len(expenses), expensesData{Expenses: expenses}))
}

// Get handles GET /expenses/:id.
//
// @Summary      Get an expense
// @Tags         expenses
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Expense id"
// @Success      200  {object}  successResponse{data=expenseData}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	expense, err := h.service.Get(c.Request().Context(), caller.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(expenseData{Expense: expense}))
}

// Create handles POST /expenses. The owner is always the caller.
//
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        Idempotency-Key  header    string                false  "Retrying with the same key returns the original expense"
// @Param        body             body      createExpenseRequest  true   "Expense"
// @Success      201              {object}  successResponse{data=expenseData}
// @Success      200              {object}  successResponse{data=expenseData}  "Idempotent replay"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in, err := toCreateInput(req, caller.ID, c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
		metrics.ExpensesReplayedTotal.Inc()
	} else {
		metrics.ExpensesCreatedTotal.WithLabelValues(string(result.Expense.Category), string(result.Expense.Currency)).Inc()
	}
	return c.JSON(status, success(expenseData{Expense: result.Expense}))
}

// Update handles PATCH /expenses/:id.
//
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string                true  "Expense id"
// @Param        body  body      updateExpenseRequest  true  "Fields to change"
// @Success      200   {object}  successResponse{data=expenseData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /expenses/{id} [patch]
func (h *ExpenseHandler) Update(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in, err := toUpdateInput(req)
	if err != nil {
		return err
	}

	expense, err := h.service.Update(c.Request().Context(), caller.ID, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(expenseData{Expense: expense}))
}

// Delete handles DELETE /expenses/:id.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Security     CookieAuth
// @Param        id   path  string  true  "Expense id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller.ID, c.Param("id")); err != nil {
		return err
	}

	metrics.ExpensesDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
