package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// For accounts it is the DuplicateAccount case: the email or Google subject is already taken.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidCredentials is returned for every local login failure so callers
// cannot tell an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken indicates an external identity assertion failed signature,
// audience, issuer or expiry checks.
var ErrInvalidToken = errors.New("invalid identity token")

// ErrVerificationUnavailable indicates the token issuing authority could not be reached in time.
var ErrVerificationUnavailable = errors.New("identity verification unavailable")

// ErrAccountPersistence wraps any store failure during account create or update.
var ErrAccountPersistence = errors.New("account persistence error")

// ErrAccountConflict indicates that an email and a Google subject resolve to different records.
var ErrAccountConflict = errors.New("account conflict")

// ErrUnauthorized indicates a missing or invalid application session token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUploadFailed indicates the photo store could not persist an upload.
var ErrUploadFailed = errors.New("upload failed")

// AppError carries an HTTP status and a public message alongside the underlying cause.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates a 400 AppError wrapping ErrValidation. The
// formatted message is shown to the caller, so it must not carry causes.
func NewValidationError(format string, args ...any) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), Err: ErrValidation}
}

// HTTPStatus maps an error from the service layer onto a status code and a
// message that is safe to show to the caller. Causes are never included.
func HTTPStatus(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, ErrDuplicate):
		return http.StatusBadRequest, "An account with this email already exists"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid Google token"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, ErrAccountConflict):
		return http.StatusConflict, "This Google account conflicts with an existing account"
	case errors.Is(err, ErrVerificationUnavailable):
		return http.StatusInternalServerError, "Google sign-in is temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
