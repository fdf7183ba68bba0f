package apperror

import "net/http"

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// InvalidID is returned when a path identifier cannot be parsed.
// Clients see it as a missing resource.
func InvalidID() *AppError {
	return New(http.StatusNotFound, "malformatted id", nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message, nil)
}

// Validation reports a failed schema check on a stored document. Existing
// clients expect 500 for this case, so it is not a 400.
func Validation(message string, err error) *AppError {
	return New(http.StatusInternalServerError, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "internal server error", err)
}
