package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

// ctxClaims extracts the validated claims injected by the Auth middleware.
// Handlers behind the access gate must read claims from here and never
// re-validate the token themselves. A missing claim means the middleware did
// not run; the request is rejected rather than trusted.
func ctxClaims(c echo.Context) (userID int64, role domain.Role, out report.Outcome) {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return 0, "", report.General("missing authentication claims")
	}
	r, _ := c.Get("role").(string)
	if r == "" {
		_ = c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return 0, "", report.General("missing authentication claims")
	}
	return userID, domain.Role(r), report.OK()
}
