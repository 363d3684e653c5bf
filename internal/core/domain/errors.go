package domain

import "errors"

// Sentinel errors form the closed failure taxonomy of the API. Handlers map
// them to HTTP statuses and report classifications; raw store or crypto
// errors are never surfaced to clients.
var (
	// ErrTransactionSetup means the store could not open a transaction.
	// No partial work has happened; the request is terminal.
	ErrTransactionSetup = errors.New("failed to create transaction")

	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenGeneration = errors.New("failed to generate token")

	// ErrRoleMismatch covers every authorization failure after the token
	// itself verified: the user was deleted, the stored role no longer
	// matches the token's role, or the role does not match the route.
	ErrRoleMismatch = errors.New("user or role mismatch")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrHashPassword       = errors.New("failed to hash password")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrUserExists   = errors.New("username already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")

	ErrProductExists   = errors.New("product already exists")
	ErrProductNotFound = errors.New("product not found")

	ErrImageExists   = errors.New("image already exists")
	ErrImageNotFound = errors.New("image not found")

	ErrCartEntryNotFound = errors.New("cart entry not found")
	ErrInvalidQuantity   = errors.New("quantity should be greater than 0")

	ErrInvalidInput = errors.New("invalid input")
)
