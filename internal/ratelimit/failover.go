package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverLimiter prefers the primary (redis) limiter and falls back to the
// in-memory one when it fails, retrying the primary after a minute.
type FailoverLimiter struct {
	primary  domain.RateLimiter
	fallback domain.RateLimiter
	logger   *zerolog.Logger

	isDown    atomic.Bool
	mu        sync.Mutex
	lastCheck time.Time
}

func NewFailoverLimiter(primary, fallback domain.RateLimiter, logger *zerolog.Logger) *FailoverLimiter {
	return &FailoverLimiter{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (l *FailoverLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if !l.isDown.Load() {
		allowed, err := l.primary.Allow(ctx, key)
		if err == nil {
			return allowed, nil
		}
		l.logger.Error().Err(err).Msg("primary rate limiter failed, falling back to memory")
		l.markDown()
	}

	// Пробуем вернуться на primary не чаще раза в минуту
	if l.isDown.Load() && l.sinceLastCheck() > time.Minute {
		allowed, err := l.primary.Allow(ctx, key)
		if err == nil {
			l.isDown.Store(false)
			return allowed, nil
		}
		l.markDown()
	}

	return l.fallback.Allow(ctx, key)
}

func (l *FailoverLimiter) markDown() {
	l.isDown.Store(true)
	l.mu.Lock()
	l.lastCheck = time.Now()
	l.mu.Unlock()
}

func (l *FailoverLimiter) sinceLastCheck() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return time.Since(l.lastCheck)
}
