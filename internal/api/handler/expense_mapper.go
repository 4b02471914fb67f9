package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/expenser/expense-api/internal/core/domain"
	"github.com/expenser/expense-api/internal/core/ports"
	"github.com/expenser/expense-api/internal/core/service"
)

// --- Request → Service input ---

func toCreateInput(req createExpenseRequest, ownerID, idempotencyKey string) (ports.CreateExpenseInput, error) {
	in := ports.CreateExpenseInput{
		OwnerID:        ownerID,
		Currency:       req.Currency,
		Category:       req.Category,
		Note:           req.Note,
		IdempotencyKey: idempotencyKey,
	}
	if req.Amount != nil {
		in.Amount = *req.Amount
	}
	if req.Date != "" {
		d, err := parseDateField(req.Date)
		if err != nil {
			return ports.CreateExpenseInput{}, err
		}
		in.Date = &d
	}
	return in, nil
}

func toUpdateInput(req updateExpenseRequest) (ports.UpdateExpenseInput, error) {
	in := ports.UpdateExpenseInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Category: req.Category,
		Note:     req.Note,
	}
	if req.Date != nil {
		d, err := parseDateField(*req.Date)
		if err != nil {
			return ports.UpdateExpenseInput{}, err
		}
		in.Date = &d
	}
	return in, nil
}

func parseDateField(s string) (time.Time, error) {
	t, _, err := service.ParseDate(s)
	if err != nil {
		return time.Time{}, domain.Validationf("%q is not a valid date", s)
	}
	return t, nil
}

// toExpenseQuery collects the listing parameters from the query string.
func toExpenseQuery(c echo.Context) ports.ExpenseQuery {
	return ports.ExpenseQuery{
		Period:    c.QueryParam("period"),
		Value:     c.QueryParam("value"),
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
		Category:  c.QueryParam("category"),
		Currency:  c.QueryParam("currency"),
		MinAmount: c.QueryParam("minAmount"),
		MaxAmount: c.QueryParam("maxAmount"),
	}
}
