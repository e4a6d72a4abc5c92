package middleware

import (
	"net/http"
	"strings"
)

// AccessTokenHeader carries the bearer token in the login response.
const AccessTokenHeader = "access-token"

// CORSMiddleware allows the configured origins ("*" for any) and exposes the
// access-token header to browser clients.
type CORSMiddleware struct {
	allowAll bool
	allowed  map[string]struct{}
}

func NewCORSMiddleware(origins string) *CORSMiddleware {
	m := &CORSMiddleware{allowed: map[string]struct{}{}}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			m.allowAll = true
		default:
			m.allowed[origin] = struct{}{}
		}
	}
	return m
}

func (m *CORSMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		_, ok := m.allowed[origin]
		if !ok && !m.allowAll {
			if r.Method == http.MethodOptions {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Expose-Headers", AccessTokenHeader)

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			reqHeaders := r.Header.Get("Access-Control-Request-Headers")
			if reqHeaders == "" {
				reqHeaders = "Content-Type, Authorization"
			}
			w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
