package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource (case, user, officer target) could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or invalid credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token has passed its expiry.
var ErrRefreshTokenExpired = fmt.Errorf("%w: refresh token expired", ErrUnauthorized)

// ErrForbidden indicates the acting role is not permitted to perform the requested transition.
var ErrForbidden = errors.New("forbidden")

// ErrRoleNotPermitted is the ErrForbidden subcase where the (state, action) transition exists
// but is reserved for a different role.
var ErrRoleNotPermitted = fmt.Errorf("%w: role not permitted for this transition", ErrForbidden)

// ErrNoSuchTransition is the ErrForbidden subcase where no transition with the requested
// (state, action) pair exists at all. Kept distinct from ErrRoleNotPermitted for diagnostics.
var ErrNoSuchTransition = fmt.Errorf("%w: no such transition", ErrForbidden)

// ErrInvalidTransition indicates the case state changed concurrently and the request
// no longer applies to the state it was issued against.
var ErrInvalidTransition = errors.New("case state no longer permits this transition")

// ErrConflict indicates a write raced another write on the same case. Safe to retry with backoff.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrUnavailable indicates a collaborator timeout or outage. Safe to retry.
var ErrUnavailable = errors.New("collaborator unavailable")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
