package report

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefrontlabs/storefront-api/internal/api/metrics"
)

// Reporter returns middleware that logs every terminal response based on the
// attached outcome. It runs strictly as an observer: the response already
// written is never altered, and it must be registered before (outside) the
// access gate so that gate rejections are reported too.
func Reporter(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			elapsed := time.Since(start)
			method := c.Request().Method
			path := c.Request().URL.Path
			status := c.Response().Status

			out, ok := Attached(c)
			if !ok {
				// The handler did not classify its own outcome. Treated as a
				// latent bug, not a silent pass.
				metrics.RequestOutcomesTotal.WithLabelValues("unclassified").Inc()
				log.Warn().
					Str("method", method).
					Str("path", path).
					Int("status", status).
					Dur("elapsed", elapsed).
					Msg("request completed without an outcome classification")
				return err
			}

			metrics.RequestOutcomesTotal.WithLabelValues(string(out.Kind)).Inc()

			if out.Failed() {
				log.Error().
					Str("method", method).
					Str("path", path).
					Int("status", status).
					Dur("elapsed", elapsed).
					Str("classification", string(out.Kind)).
					Str("detail", out.Detail).
					Msg("request failed")
				return err
			}

			log.Info().
				Str("method", method).
				Str("path", path).
				Int("status", status).
				Dur("elapsed", elapsed).
				Msg("request processed")
			return err
		}
	}
}
