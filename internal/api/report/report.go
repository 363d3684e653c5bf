// Package report carries the per-request error classification from handlers
// to the logging stage, out-of-band from the client-facing response body.
//
// Handlers are written as func(echo.Context) Outcome and registered through
// Wrap, which makes the classification a required return value instead of
// something a handler might forget to attach.
package report

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

// Kind enumerates the closed set of request classifications.
type Kind string

const (
	KindOK               Kind = "ok"
	KindTransactionSetup Kind = "transaction_setup_failed"
	KindValidation       Kind = "validation_failed"
	KindDB               Kind = "db_error"
	KindConflict         Kind = "conflict"
	KindPasswordHash     Kind = "password_hash_failed"
	KindTokenGeneration  Kind = "token_generation_failed"
	KindTokenInvalid     Kind = "token_invalid"
	KindTokenExpired     Kind = "token_expired"
	KindRoleMismatch     Kind = "user_or_role_mismatch"
	KindGeneral          Kind = "general"
)

// Outcome is the classification attached to exactly one terminal response.
// Success is an explicit marker, not the absence of a failure.
type Outcome struct {
	Kind   Kind
	Detail string
}

// OK is the explicit success marker.
func OK() Outcome { return Outcome{Kind: KindOK} }

// General classifies failures that fit no other kind.
func General(detail string) Outcome { return Outcome{Kind: KindGeneral, Detail: detail} }

// Failed reports whether the outcome describes a failure.
func (o Outcome) Failed() bool { return o.Kind != KindOK }

// FromError maps a domain error onto the closed taxonomy. Unrecognised
// errors classify as a database error carrying the error text; the text
// travels only through the side channel, never to the client.
func FromError(err error) Outcome {
	switch {
	case err == nil:
		return OK()
	case errors.Is(err, domain.ErrTransactionSetup):
		return Outcome{Kind: KindTransactionSetup, Detail: err.Error()}
	case errors.Is(err, domain.ErrTokenExpired):
		return Outcome{Kind: KindTokenExpired, Detail: err.Error()}
	case errors.Is(err, domain.ErrTokenInvalid):
		return Outcome{Kind: KindTokenInvalid, Detail: err.Error()}
	case errors.Is(err, domain.ErrTokenGeneration):
		return Outcome{Kind: KindTokenGeneration, Detail: err.Error()}
	case errors.Is(err, domain.ErrRoleMismatch):
		return Outcome{Kind: KindRoleMismatch, Detail: err.Error()}
	case errors.Is(err, domain.ErrHashPassword):
		return Outcome{Kind: KindPasswordHash, Detail: err.Error()}
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrProductExists),
		errors.Is(err, domain.ErrImageExists):
		return Outcome{Kind: KindConflict, Detail: err.Error()}
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrImageNotFound),
		errors.Is(err, domain.ErrCartEntryNotFound),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTooManyAttempts),
		errors.Is(err, domain.ErrInvalidInput):
		return Outcome{Kind: KindValidation, Detail: err.Error()}
	default:
		return Outcome{Kind: KindDB, Detail: err.Error()}
	}
}

// contextKey is the echo context key the outcome travels under between
// Wrap/Attach and the Reporter middleware.
const contextKey = "report.outcome"

// HandlerFunc is a request handler that renders its own response and returns
// the classification for the side channel.
type HandlerFunc func(c echo.Context) Outcome

// Wrap adapts a HandlerFunc to echo. The returned handler attaches the
// outcome to the request context so the Reporter can read it after the
// response is written.
func Wrap(h HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		Attach(c, h(c))
		return nil
	}
}

// Attach associates the outcome with the in-flight request. Middleware that
// short-circuits (the access gate) uses it directly; handlers go through Wrap.
func Attach(c echo.Context, o Outcome) {
	c.Set(contextKey, o)
}

// Attached returns the outcome attached to the request, if any.
func Attached(c echo.Context) (Outcome, bool) {
	o, ok := c.Get(contextKey).(Outcome)
	return o, ok
}
