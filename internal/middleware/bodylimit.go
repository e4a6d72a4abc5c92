package middleware

import (
	"net/http"

	"github.com/foodordering/food-server-go/internal/config"
	apperrors "github.com/foodordering/food-server-go/internal/errors"
	"github.com/foodordering/food-server-go/internal/httputil"
)

// BodyLimitMiddleware caps JSON request bodies. Declared oversize bodies are
// rejected up front; undeclared ones fail on read inside the handler.
type BodyLimitMiddleware struct {
	maxBytes int64
}

func NewBodyLimitMiddleware(maxBytes int64) *BodyLimitMiddleware {
	if maxBytes <= 0 {
		maxBytes = config.MaxRequestBodyBytes
	}
	return &BodyLimitMiddleware{maxBytes: maxBytes}
}

func (m *BodyLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		if r.ContentLength > m.maxBytes {
			httputil.WriteJSON(w, http.StatusRequestEntityTooLarge, httputil.ErrorResponse{
				Code:    apperrors.ErrCodeValidation,
				Message: "Request body too large",
			})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, m.maxBytes)
		next.ServeHTTP(w, r)
	})
}
