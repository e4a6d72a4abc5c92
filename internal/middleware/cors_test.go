package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("exposes access-token for allowed origin", func(t *testing.T) {
		handler := NewCORSMiddleware("https://app.example.com").Handler(next)

		req := httptest.NewRequest(http.MethodPost, "/customer/login", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, AccessTokenHeader, rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		handler := NewCORSMiddleware("*").Handler(next)

		req := httptest.NewRequest(http.MethodGet, "/states", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("ignores unknown origin", func(t *testing.T) {
		handler := NewCORSMiddleware("https://app.example.com").Handler(next)

		req := httptest.NewRequest(http.MethodGet, "/states", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight", func(t *testing.T) {
		handler := NewCORSMiddleware("*").Handler(next)

		req := httptest.NewRequest(http.MethodOptions, "/customer/login", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Headers", "authorization")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "authorization", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})

	t.Run("rejects preflight from unknown origin", func(t *testing.T) {
		handler := NewCORSMiddleware("https://app.example.com").Handler(next)

		req := httptest.NewRequest(http.MethodOptions, "/customer/login", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
