package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/foodordering/food-server-go/internal/audit"
	apperrors "github.com/foodordering/food-server-go/internal/errors"
	"github.com/foodordering/food-server-go/internal/httputil"
	"github.com/foodordering/food-server-go/internal/model"
	"github.com/foodordering/food-server-go/internal/service"
)

type contextKey string

const (
	CustomerContextKey contextKey = "customer"
	SessionContextKey  contextKey = "session"
)

func GetCustomer(ctx context.Context) *model.Customer {
	if customer, ok := ctx.Value(CustomerContextKey).(*model.Customer); ok {
		return customer
	}
	return nil
}

func GetSession(ctx context.Context) *model.CustomerAuth {
	if session, ok := ctx.Value(SessionContextKey).(*model.CustomerAuth); ok {
		return session
	}
	return nil
}

// TokenResolver maps a bearer token to a live session.
type TokenResolver interface {
	Resolve(ctx context.Context, accessToken string) (*service.AuthenticatedCustomer, error)
}

// AuthMiddleware rejects requests without a live bearer session and stores
// the customer and session in the request context.
type AuthMiddleware struct {
	resolver TokenResolver
}

func NewAuthMiddleware(resolver TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authed, err := m.resolver.Resolve(r.Context(), BearerToken(r))
		if err != nil {
			audit.LogFromRequest(r, audit.Event{
				Type: audit.EventAuthFailure,
				Code: string(apperrors.GetCode(err)),
			})
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), CustomerContextKey, authed.Customer)
		ctx = context.WithValue(ctx, SessionContextKey, authed.Session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken returns the token after "Bearer " in the Authorization header,
// or the empty string.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
