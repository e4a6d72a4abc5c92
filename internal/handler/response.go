package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/foodordering/food-server-go/internal/errors"
	"github.com/foodordering/food-server-go/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst zeroed so
// the field rules report what is missing.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.ValidationError("Request body too large")
	}
	return apperrors.ValidationError("Invalid request body").WithCause(err)
}

type statusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type messageResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
