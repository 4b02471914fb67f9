package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/expenser/expense-api/internal/core/domain"
	"github.com/expenser/expense-api/internal/core/ports"
)

const (
	// CookieName carries the session token set on login.
	CookieName = "loginToken"

	contextKeyUser = "user"
)

// UserFinder resolves the subject of a verified token.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth verifies the session token and stores the caller in the context.
// The token is read from the loginToken cookie, falling back to an
// "Authorization: Bearer" header.
func Auth(tokens ports.TokenService, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return domain.ErrNotLoggedIn
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				return domain.ErrInvalidToken
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrTokenUserGone
				}
				return err
			}

			SetUser(c, user)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserFromContext returns the caller stored by Auth, or nil.
func UserFromContext(c echo.Context) *domain.User {
	u, _ := c.Get(contextKeyUser).(*domain.User)
	return u
}

// SetUser stores u as the authenticated caller.
func SetUser(c echo.Context, u *domain.User) {
	c.Set(contextKeyUser, u)
}
