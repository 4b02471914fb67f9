package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/expenser/expense-api/internal/api/middleware"
	"github.com/expenser/expense-api/internal/core/domain"
)

// ctxUser returns the caller stored by the Auth middleware. A missing user
// means the route was registered without the guard; fail closed.
func ctxUser(c echo.Context) (*domain.User, error) {
	u := middleware.UserFromContext(c)
	if u == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return u, nil
}
