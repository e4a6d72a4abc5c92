package httputil

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/foodordering/food-server-go/internal/errors"
)

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details any                 `json:"details,omitempty"`
}

// WriteError writes an AppError as an HTTP response with appropriate status code
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code == apperrors.ErrCodeDatabase {
		// Never leak storage or unknown causes to clients
		appErr = apperrors.Internal("An unexpected error occurred")
	}

	WriteJSON(w, StatusFromCode(appErr.Code), ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// StatusFromCode maps an ErrorCode to its HTTP status. Domain codes are
// grouped by prefix: SGR/UCR/SAR are 400, ATH 401, ATHR 403, ANF 404.
func StatusFromCode(code apperrors.ErrorCode) int {
	c := string(code)
	switch {
	case strings.HasPrefix(c, "ATHR-"):
		return http.StatusForbidden
	case strings.HasPrefix(c, "ATH-"):
		return http.StatusUnauthorized
	case strings.HasPrefix(c, "SGR-"),
		strings.HasPrefix(c, "UCR-"),
		strings.HasPrefix(c, "SAR-"):
		return http.StatusBadRequest
	case strings.HasPrefix(c, "ANF-"):
		return http.StatusNotFound
	}

	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
