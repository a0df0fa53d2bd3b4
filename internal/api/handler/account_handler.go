package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-system/internal/api/metrics"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

// AccountHandler serves administrative account management.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// List returns every account ordered by username.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  accountListResponse
// @Failure      401  {object}  resultResponse
// @Failure      403  {object}  resultResponse
// @Router       /users [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountListResponse(accounts))
}

// Get returns a single account.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Account ID"
// @Success      200  {object}  accountResponse
// @Failure      404  {object}  resultResponse
// @Router       /users/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	account, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Create registers a new, active account.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createAccountRequest  true  "New account"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  resultResponse
// @Failure      409   {object}  resultResponse
// @Router       /users [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.Create(c.Request().Context(), toCreateAccountInput(req))
	if err != nil {
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("account", "create").Inc()
	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// Update edits an account. A blank password keeps the current one.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                   true  "Account ID"
// @Param        body  body      updateAccountRequest  true  "Account fields"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  resultResponse
// @Failure      404   {object}  resultResponse
// @Failure      409   {object}  resultResponse
// @Router       /users/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.Update(c.Request().Context(), toUpdateAccountInput(id, req))
	if err != nil {
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("account", "update").Inc()
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Deactivate soft-deletes an account; it can no longer log in.
//
// @Summary      Deactivate user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Account ID"
// @Success      200  {object}  resultResponse
// @Failure      404  {object}  resultResponse
// @Router       /users/{id} [delete]
func (h *AccountHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("account", "deactivate").Inc()
	return c.JSON(http.StatusOK, resultResponse{Success: true, Message: "User deactivated."})
}
