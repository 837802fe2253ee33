package services

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// maxTrackedConversations bounds the limiter map; it is reset when full.
const maxTrackedConversations = 10000

// throttle keeps one token bucket per conversation.
type throttle struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// newThrottle returns nil when limiting is disabled.
func newThrottle(cfg domain.RateLimitSettings) *throttle {
	if cfg.PerSecond <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &throttle{
		limit:    rate.Limit(cfg.PerSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the conversation may make a request now.
func (t *throttle) Allow(conversationID string) bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	l, ok := t.limiters[conversationID]
	if !ok {
		if len(t.limiters) >= maxTrackedConversations {
			t.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[conversationID] = l
	}
	t.mu.Unlock()
	return l.Allow()
}

// keyedMutex serializes work per key without a global lock.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock acquires the lock for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
