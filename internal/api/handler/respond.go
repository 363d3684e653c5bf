package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// fail renders the client-facing error body and returns the side-channel
// classification in one step. Known domain errors map to deterministic
// statuses; anything unrecognised renders a generic 500 while the real cause
// travels only through the classification.
func fail(c echo.Context, err error) report.Outcome {
	code, msg := resolveError(err)
	_ = c.JSON(code, errorResponse{Error: msg})
	return report.FromError(err)
}

// badRequest renders a 400 for payload/bind failures.
func badRequest(c echo.Context, detail string) report.Outcome {
	_ = c.JSON(http.StatusBadRequest, errorResponse{Error: detail})
	return report.Outcome{Kind: report.KindValidation, Detail: detail}
}

func resolveError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, domain.ErrTooManyAttempts.Error()
	case errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrProductExists),
		errors.Is(err, domain.ErrImageExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrImageNotFound),
		errors.Is(err, domain.ErrCartEntryNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	default:
		// Store, crypto and transaction failures are never surfaced verbatim.
		return http.StatusInternalServerError, "internal server error"
	}
}
