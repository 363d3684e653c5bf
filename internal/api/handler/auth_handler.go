package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/metrics"
	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new user account. Public registration always yields the
// "user" role; admins are seeded at startup or promoted out of band.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) report.Outcome {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, domain.RoleUser)
	if err != nil {
		return fail(c, err)
	}

	_ = c.JSON(http.StatusCreated, authResponse{User: user})
	return report.OK()
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) report.Outcome {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	tkn, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return fail(c, err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	_ = c.JSON(http.StatusOK, authResponse{Token: tkn, User: user})
	return report.OK()
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
