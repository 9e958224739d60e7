package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication credentials were not provided or are invalid")
	ErrForbidden       = errors.New("you do not have permission to perform this action")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource conflicts with existing state")
)

// AppError carries the HTTP status and a stable machine readable code.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(code, message string) *AppError {
	return New(http.StatusBadRequest, code, message, ErrValidation)
}

func NotFound(code, message string) *AppError {
	return New(http.StatusNotFound, code, message, ErrNotFound)
}

func Forbidden(code, message string) *AppError {
	return New(http.StatusForbidden, code, message, ErrForbidden)
}

func Unauthenticated(code, message string) *AppError {
	return New(http.StatusUnauthorized, code, message, ErrUnauthenticated)
}

// StatusOf maps an error from any layer to an HTTP status code.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
