package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expenser/expense-api/internal/core/domain"
)

// Me is the path alias for the authenticated caller's own id.
const Me = "me"

// SelfOnly lets a request through only when the path parameter names the
// caller, either by id or as "me". Must run after Auth.
func SelfOnly(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFromContext(c)
			if user == nil {
				return domain.ErrNotLoggedIn
			}

			id := c.Param(param)
			if id != Me && id != user.ID {
				return echo.NewHTTPError(http.StatusForbidden, "You can only modify your own account")
			}
			return next(c)
		}
	}
}
