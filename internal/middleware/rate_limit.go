package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/deppfellow/kringe-music/internal/errs"
	"github.com/deppfellow/kringe-music/internal/server"
)

// Limits per client IP for the endpoints worth abusing.
var (
	AuthLimit     = Limit{PerMinute: 10, Burst: 5}
	FeedbackLimit = Limit{PerMinute: 5, Burst: 3}
)

// Limit is a token bucket refilled PerMinute times a minute.
type Limit struct {
	PerMinute int
	Burst     int
}

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// For returns a limiter keyed by client IP. Each call owns its own store,
// so endpoints do not share buckets.
func (r *RateLimitMiddleware) For(endpoint string, limit Limit) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit.PerMinute) / 60),
		Burst:     limit.Burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError(errs.MsgSecurity, false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(endpoint)
			GetLogger(c).Warn().
				Str("endpoint", endpoint).
				Str("identifier", identifier).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError()
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.LoggerService.RecordCustomEvent("RateLimitHit", map[string]interface{}{
		"endpoint": endpoint,
	})
}
