// internal/api/ratelimit.go
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/logger"
)

// RateLimiter enforces a fixed-window per-caller query budget backed by
// Redis, so the limit holds across replicas. A Redis outage fails open:
// answering queries matters more than enforcing the budget.
type RateLimiter struct {
	client *redis.Client
	cfg    config.RateLimitConfig
	logger logger.Logger
}

func NewRateLimiter(client *redis.Client, cfg config.RateLimitConfig, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		cfg:    cfg,
		logger: log.With(map[string]interface{}{"component": "rate_limiter"}),
	}
}

// Allow reports whether the caller may issue another query in the current
// window.
func (rl *RateLimiter) Allow(ctx context.Context, caller string) bool {
	if !rl.cfg.Enabled || rl.client == nil {
		return true
	}

	key := fmt.Sprintf("assistant:ratelimit:%s", caller)
	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		rl.logger.WithError(err).Warn("rate limit check failed, allowing request", map[string]interface{}{
			"caller": caller,
		})
		return true
	}
	if count == 1 {
		window := time.Duration(rl.cfg.WindowSeconds) * time.Second
		if err := rl.client.Expire(ctx, key, window).Err(); err != nil {
			rl.logger.WithError(err).Warn("rate limit window expiry failed", map[string]interface{}{
				"caller": caller,
			})
		}
	}
	return count <= int64(rl.cfg.MaxPerWindow)
}

// callerKey identifies the caller for rate limiting: the client IP, without
// the ephemeral port.
func callerKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
