package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/foodordering/food-server-go/internal/audit"
	apperrors "github.com/foodordering/food-server-go/internal/errors"
	"github.com/foodordering/food-server-go/internal/httputil"
	"github.com/foodordering/food-server-go/internal/redis"
	"github.com/foodordering/food-server-go/internal/service"
)

type RateLimitChecker interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) service.RateLimitResult
}

// IPRateLimitMiddleware limits requests per client IP within scope.
type IPRateLimitMiddleware struct {
	limiter RateLimitChecker
	limit   int
	window  time.Duration
	scope   string
}

func NewIPRateLimitMiddleware(limiter RateLimitChecker, limit int, window time.Duration, scope string) *IPRateLimitMiddleware {
	return &IPRateLimitMiddleware{
		limiter: limiter,
		limit:   limit,
		window:  window,
		scope:   scope,
	}
}

func (m *IPRateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := audit.ClientIP(r)

		result := m.limiter.CheckLimit(r.Context(), redis.RateLimitKey(m.scope, ip), m.limit, m.window)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(m.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			secondsLeft := int(time.Until(result.ResetAt).Seconds()) + 1
			w.Header().Set("Retry-After", fmt.Sprintf("%d", secondsLeft))
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventRateLimitExceed,
				Details: map[string]interface{}{"scope": m.scope},
			})
			httputil.WriteError(w, apperrors.RateLimitExceeded())
			return
		}

		next.ServeHTTP(w, r)
	})
}
