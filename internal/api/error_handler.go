package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler for errors that
// escape the handler layer: router 404s, method-not-allowed, and panics
// recovered by echo. Handlers render their own domain errors, so anything
// arriving here that is not an *echo.HTTPError is unexpected and gets
// logged with a generic message to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
