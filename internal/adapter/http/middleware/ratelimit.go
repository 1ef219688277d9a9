package middleware

import (
	"fmt"
	"strconv"
	"time"

	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/apperror"
	"pix-credit-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int
	Window time.Duration
}

// RateLimitRules returns the per-group limits. The "api" group gets the
// configured budget; the auth groups are fixed and tighter.
func RateLimitRules(requests int, window time.Duration) map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"api":           {Limit: requests, Window: window},
		"auth_login":    {Limit: 10, Window: time.Minute},
		"auth_register": {Limit: 5, Window: time.Hour},
	}
}

// RateLimiter enforces rule for group. Limiter errors let the request through.
func RateLimiter(limiter ports.RateLimiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		allowed, remaining, err := limiter.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rule.Window/time.Second)))
			response.Abort(c, apperror.ErrRateLimitExceeded())
			return
		}
		c.Next()
	}
}

// extractIdentifier keys authenticated callers by user id, others by IP.
func extractIdentifier(c *gin.Context) string {
	if actor, ok := ActorFrom(c); ok {
		return actor.UserID.String()
	}
	return c.ClientIP()
}
