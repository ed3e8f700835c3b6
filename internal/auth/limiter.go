package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginLimiter throttles repeated failed logins per email address using a
// redis counter with a sliding expiry. When redis is unreachable the limiter
// degrades open: a broken cache must not lock everyone out.
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginLimiter builds a limiter; a nil client disables throttling.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	return &LoginLimiter{client: client, max: max, window: window, logger: logger}
}

// Allow reports whether another login attempt for the email may proceed and
// records the attempt.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil || l.client == nil || l.max <= 0 {
		return true
	}

	key := loginAttemptKey(email)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.max)
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, loginAttemptKey(email)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}

func loginAttemptKey(email string) string {
	return "login-attempts:" + email
}
