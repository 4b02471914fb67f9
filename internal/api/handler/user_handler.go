package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expenser/expense-api/internal/api/metrics"
	"github.com/expenser/expense-api/internal/core/domain"
	"github.com/expenser/expense-api/internal/core/ports"
)

// UserHandler serves /users. Mutations act on the caller; the router guards
// them with middleware.SelfOnly.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List active users
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  successResponse{data=usersData}
// @Failure      401  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successList(len(users), usersData{Users: users}))
}

// Get handles GET /users/:id. "me" resolves to the caller.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "User id or \"me\""
// @Success      200  {object}  successResponse{data=userData}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "me" {
		caller, err := ctxUser(c)
		if err != nil {
			return err
		}
		id = caller.ID
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(userData{User: user}))
}

// Update handles PATCH /users/:id. Only name and email may change.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string             true  "Own user id or \"me\""
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  successResponse{data=userData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Password != nil || req.PasswordConfirm != nil {
		return domain.ErrPasswordUpdate
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), caller.ID, domain.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(userData{User: user}))
}

// Delete handles DELETE /users/:id. The account is deactivated, not removed.
//
// @Summary      Deactivate own account
// @Tags         users
// @Accept       json
// @Security     CookieAuth
// @Param        id    path  string             true  "Own user id or \"me\""
// @Param        body  body  deactivateRequest  true  "Password confirmation"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req deactivateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Deactivate(c.Request().Context(), caller.ID, req.Password, req.PasswordConfirm); err != nil {
		return err
	}

	metrics.UsersDeactivatedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
