package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/metrics"
	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

// Auth gates a route group behind a required role. Every request is
// validated end to end against the credential store; nothing is cached
// between requests, so role changes and deletions take effect immediately.
//
// All rejections look identical to the caller (a generic 401 body) so the
// client cannot tell which part of the check failed; the specific reason
// travels only through the side-channel classification.
func Auth(sessions ports.SessionValidator, requiredRole domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return reject(c, report.General("missing/invalid Authorization"), "missing_header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return reject(c, report.General("missing/invalid Authorization"), "bad_scheme")
			}

			claims, err := sessions.Validate(c.Request().Context(), parts[1], requiredRole)
			if err != nil {
				out := report.FromError(err)
				return reject(c, out, rejectionReason(out.Kind))
			}

			c.Set("user_id", claims.UserID)
			c.Set("role", string(claims.Role))

			return next(c)
		}
	}
}

func reject(c echo.Context, out report.Outcome, reason string) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	report.Attach(c, out)
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}

func rejectionReason(kind report.Kind) string {
	switch kind {
	case report.KindTokenInvalid:
		return "token_invalid"
	case report.KindTokenExpired:
		return "token_expired"
	case report.KindRoleMismatch:
		return "role_mismatch"
	default:
		return "store_error"
	}
}
