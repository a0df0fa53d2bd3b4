package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-system/internal/api/metrics"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

// RoleHandler serves role management.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// List returns every role ordered by name.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  roleListResponse
// @Router       /roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleListResponse(roles))
}

// @Summary      Get role
// @Tags         roles
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Role ID"
// @Success      200  {object}  roleResponse
// @Failure      404  {object}  resultResponse
// @Router       /roles/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	role, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

// @Summary      Create role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      roleRequest  true  "Role"
// @Success      201   {object}  roleResponse
// @Failure      400   {object}  resultResponse
// @Failure      409   {object}  resultResponse
// @Router       /roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req roleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("role", "create").Inc()
	return c.JSON(http.StatusCreated, toRoleResponse(role))
}

// @Summary      Rename role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int          true  "Role ID"
// @Param        body  body      roleRequest  true  "Role"
// @Success      200   {object}  roleResponse
// @Failure      404   {object}  resultResponse
// @Failure      409   {object}  resultResponse
// @Router       /roles/{id} [put]
func (h *RoleHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req roleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.service.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("role", "update").Inc()
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

// Delete removes a role no account references.
//
// @Summary      Delete role
// @Tags         roles
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Role ID"
// @Success      200  {object}  resultResponse
// @Failure      404  {object}  resultResponse
// @Failure      409  {object}  resultResponse
// @Router       /roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("role", "delete").Inc()
	return c.JSON(http.StatusOK, resultResponse{Success: true, Message: "Role deleted."})
}
