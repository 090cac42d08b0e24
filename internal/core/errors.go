// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrGatewayFailed = errors.New("payment gateway failed")
)

// AppError is an error that already knows its HTTP status and public message.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
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

func NewAppError(err error, message string, statusCode int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized access"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden access"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, "unauthorized access", http.StatusUnauthorized, "TOKEN_EXPIRED")
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "unauthorized access", http.StatusUnauthorized, "TOKEN_INVALID")
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		resource+" not found",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest, "BAD_REQUEST")
}

func GatewayError() *AppError {
	return NewAppError(
		ErrGatewayFailed,
		"payment gateway unavailable",
		http.StatusBadGateway,
		"GATEWAY_ERROR",
	)
}
