package middleware

import (
	"context"
	"fmt"

	"pagesmith-api/internal/ctx"
	"pagesmith-api/internal/metrics"
	"pagesmith-api/internal/shared"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Counter is a keyed, monotonically increasing counter shared by every
// process replica. Entries are never expired; the limit is advisory and
// authenticated callers bypass it entirely.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
}

type RedisCounter struct {
	Client *redis.Client
}

func (r *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return r.Client.Incr(ctx, key).Result()
}

type RateLimiter struct {
	counter Counter
	max     int64
	log     *zap.SugaredLogger
}

func NewRateLimiter(counter Counter, max int64, log *zap.SugaredLogger) *RateLimiter {
	return &RateLimiter{counter: counter, max: max, log: log}
}

// LimitAnonymous counts generation requests per caller network identity and
// rejects anonymous callers above the configured maximum. A session cookie
// skips the counter, the limit only gates callers who have not logged in.
func (rl *RateLimiter) LimitAnonymous(next echo.HandlerFunc) echo.HandlerFunc {
	return func(cc echo.Context) error {
		c := cc.(*ctx.Context)
		if c.Token != "" {
			return next(c)
		}

		count, err := rl.counter.Incr(c.Request().Context(), fmt.Sprintf("ratelimit:ip:%s", c.RealIP()))
		if err != nil {
			// Fail open when the counter store is unreachable
			rl.log.Errorw("Failed to increment rate limit counter", "error", err)
			return next(c)
		}
		if count > rl.max {
			metrics.RateLimitedRequests.Inc()
			return c.JSON(shared.ErrRateLimited.StatusCode, map[string]any{
				"ok":        false,
				"openLogin": true,
				"error":     shared.ErrRateLimited.Err.Error(),
			})
		}
		return next(c)
	}
}
