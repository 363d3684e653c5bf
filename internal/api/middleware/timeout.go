package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// StoreTimeout bounds each request's context so that store calls cannot hang
// past d. Cancellation propagates into open transactions, whose deferred
// rollback tears them down.
func StoreTimeout(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d <= 0 {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
