package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// MemoryLimiter держит по токен-бакету на ключ; используется как резерв,
// когда Redis недоступен, и в тестах.
type MemoryLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewMemoryLimiter allows `requests` per `windowSeconds` for each key.
func NewMemoryLimiter(requests, windowSeconds int) *MemoryLimiter {
	if windowSeconds <= 0 {
		windowSeconds = 60
	}
	burst := requests
	if burst <= 0 {
		burst = 5
	}
	return &MemoryLimiter{
		limit: rate.Limit(float64(requests) / float64(windowSeconds)),
		burst: burst,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return l.getLimiter(key).Allow(), nil
}

func (l *MemoryLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(l.limit, l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}
