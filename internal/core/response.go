// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse keeps the {error, message} body clients already parse.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func Message(w http.ResponseWriter, message string) {
	OK(w, MessageResponse{Message: message})
}

func Text(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response write
	_, _ = w.Write([]byte(body))
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		JSON(w, appErr.StatusCode, ErrorResponse{
			Error:   true,
			Message: appErr.Message,
			Code:    appErr.Code,
		})
		return
	}

	InternalServerError(w, err)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, BadRequestError(message))
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSONError(w, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, ForbiddenError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   true,
		Message: "internal server error",
		Code:    "INTERNAL_ERROR",
	})
}

func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email", field))
		case "uuid", "uuid4":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid id", field))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max", "lt", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}

	return strings.Join(msgs, "; ")
}
