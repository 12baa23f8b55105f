package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"loan-ledger/internal/config"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	rateLimitKeyPrefix = "ratelimit:"
	rateLimitWindow    = time.Second
	limiterIdleSweep   = 10 * time.Minute
)

// RateLimiterMiddleware limits requests per client IP. With a redis client
// the limit is a fixed one second window shared by every replica; without
// one each process keeps its own token buckets.
type RateLimiterMiddleware struct {
	limiters    sync.Map
	redisClient redis.Cmdable
	cfg         config.RateLimitConfig
	logger      *slog.Logger
	stop        chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient redis.Cmdable, logger *slog.Logger) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		redisClient: redisClient,
		cfg:         cfg,
		logger:      logger.With("component", "RateLimiter"),
		stop:        make(chan struct{}),
	}

	switch {
	case !cfg.Enabled:
		rl.logger.Info("Rate limiting is disabled via configuration.")
	case redisClient != nil:
		rl.logger.Info("Rate limiter using redis fixed window", "limit", rl.windowLimit(), "window", rateLimitWindow)
	default:
		rl.logger.Info("Rate limiter using in-process token buckets", "rps", cfg.RPS, "burst", cfg.Burst)
		go rl.cleanupLimiters()
	}

	return rl
}

// Close stops the idle limiter sweep.
func (rl *RateLimiterMiddleware) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiterMiddleware) windowLimit() int64 {
	limit := int64(math.Ceil(rl.cfg.RPS))
	if limit < 1 {
		limit = 1
	}
	return limit
}

func (rl *RateLimiterMiddleware) getLimiter(ip string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(ip); ok {
		return limiter.(*rate.Limiter)
	}
	limiter, _ := rl.limiters.LoadOrStore(ip, rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst))
	return limiter.(*rate.Limiter)
}

func (rl *RateLimiterMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(limiterIdleSweep)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.limiters.Range(func(key, value interface{}) bool {
				limiter := value.(*rate.Limiter)
				if limiter.Tokens() >= float64(limiter.Burst()) {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}

func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); xRealIP != "" && net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// allowRedis fails open when redis is unavailable.
func (rl *RateLimiterMiddleware) allowRedis(ctx context.Context, ip string) bool {
	key := rateLimitKeyPrefix + ip
	count, err := rl.redisClient.Incr(ctx, key).Result()
	if err != nil {
		rl.logger.ErrorContext(ctx, "Redis INCR failed during rate limiting check", "error", err, "ip", ip)
		return true
	}
	if count == 1 {
		if err := rl.redisClient.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
			rl.logger.ErrorContext(ctx, "Failed to set Redis EXPIRE for rate limit key", "error", err, "key", key)
		}
	}
	return count <= rl.windowLimit()
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)

		var allowed bool
		if rl.redisClient != nil {
			allowed = rl.allowRedis(r.Context(), ip)
		} else {
			allowed = rl.getLimiter(ip).Allow()
		}

		if !allowed {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rateLimitWindow.Seconds()))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"code":    "RATE_LIMITED",
					"message": "Rate limit exceeded",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
