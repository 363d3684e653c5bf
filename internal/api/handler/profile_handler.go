package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

// ProfileHandler serves the authenticated user's own record plus the admin
// user management endpoints.
type ProfileHandler struct {
	authService ports.AuthService
}

func NewProfileHandler(authService ports.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// Get returns the caller's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) report.Outcome {
	userID, _, out := ctxClaims(c)
	if out.Failed() {
		return out
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, user)
	return report.OK()
}

type patchProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// Patch updates the caller's username and/or password.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      409  {object}  errorResponse
// @Router       /api/profile [patch]
func (h *ProfileHandler) Patch(c echo.Context) report.Outcome {
	userID, _, out := ctxClaims(c)
	if out.Failed() {
		return out
	}

	var req patchProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.authService.PatchProfile(c.Request().Context(), userID, req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, user)
	return report.OK()
}

// ListUsers returns every user account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /api/admin/users [get]
func (h *ProfileHandler) ListUsers(c echo.Context) report.Outcome {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, users)
	return report.OK()
}

// DeleteUser removes a user account. Outstanding tokens for the account die
// with it on the next validation.
//
// @Summary      Delete user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *ProfileHandler) DeleteUser(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.authService.DeleteUser(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, messageResponse{Message: "resource deleted successfully"})
	return report.OK()
}
