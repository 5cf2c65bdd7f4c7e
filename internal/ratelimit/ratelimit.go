package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"internship-portal-backend/internal/middleware"
	"internship-portal-backend/internal/models"
)

const (
	ActionApply  = "apply"
	ActionUpload = "upload_resume"
)

// Limiter allows one action per user per window. A nil redis client allows
// everything.
type Limiter struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func New(rdb *redis.Client, logger *slog.Logger) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{rdb: rdb, logger: logger}
}

// NewFromURL connects to redisURL. An empty URL yields a limiter that allows
// everything.
func NewFromURL(ctx context.Context, redisURL string, logger *slog.Logger) (*Limiter, error) {
	if redisURL == "" {
		return New(nil, logger), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return New(rdb, logger), nil
}

func (l *Limiter) Close() error {
	if l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}

func Key(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

// Allow claims the window for (userID, action). When the window is already
// taken it returns false and the time left.
func (l *Limiter) Allow(ctx context.Context, userID uuid.UUID, action string, window time.Duration) (bool, time.Duration, error) {
	if l == nil || l.rdb == nil || window <= 0 {
		return true, 0, nil
	}

	key := Key(userID, action)
	wasSet, err := l.rdb.SetNX(ctx, key, "locked", window).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if wasSet {
		return true, 0, nil
	}

	ttl, err := l.rdb.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return false, ttl, nil
}

// Middleware limits an authenticated route. Redis failures let the request
// through.
func (l *Limiter) Middleware(action string, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			c.Next()
			return
		}

		allowed, retryAfter, err := l.Allow(c.Request.Context(), userID, action, window)
		if err != nil {
			l.logger.Warn("rate limit check failed", "action", action, "user_id", userID, "error", err)
			c.Next()
			return
		}
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "Too many requests",
				Message: fmt.Sprintf("please wait %d seconds before trying again", seconds),
			})
			return
		}
		c.Next()
	}
}
