package models

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Order processing errors
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrStorage indicates a persistence-layer failure. It is fatal to the
	// current request and is never retried by the core.
	ErrStorage = errors.New("storage failure")
)

// LockoutError is returned when an identity has exceeded the allowed number
// of login attempts. It carries the remaining lockout duration so callers can
// surface a Retry-After value distinct from a plain credential failure.
type LockoutError struct {
	RetryAfter time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("too many login attempts, retry after %ds", e.RetryAfterSeconds())
}

// RetryAfterSeconds returns the lockout remainder rounded up to whole seconds.
func (e *LockoutError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}
