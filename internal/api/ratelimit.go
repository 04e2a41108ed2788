package api

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitWindow = time.Minute

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	// Allow records one request for key. When the key is over limit it
	// returns false and the time until its window resets.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration)
}

type bucket struct {
	count     int
	windowEnd time.Time
}

// MemoryRateLimitStore keeps counters in process. Expired buckets are swept
// at most once per window, so idle clients do not accumulate.
type MemoryRateLimitStore struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	nextSweep time.Time
	now       func() time.Time
}

func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{buckets: make(map[string]*bucket), now: time.Now}
}

func (s *MemoryRateLimitStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !now.Before(s.nextSweep) {
		for k, b := range s.buckets {
			if !now.Before(b.windowEnd) {
				delete(s.buckets, k)
			}
		}
		s.nextSweep = now.Add(window)
	}

	b, ok := s.buckets[key]
	if !ok || !now.Before(b.windowEnd) {
		s.buckets[key] = &bucket{count: 1, windowEnd: now.Add(window)}
		return true, 0
	}
	if b.count < limit {
		b.count++
		return true, 0
	}
	return false, b.windowEnd.Sub(now)
}

// Len reports how many keys are tracked.
func (s *MemoryRateLimitStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// RedisRateLimitStore shares counters between replicas. Redis errors fail
// open.
type RedisRateLimitStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedisRateLimitStore(client *redis.Client, logger *slog.Logger) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client, prefix: "spechunter:ratelimit:", logger: logger}
}

func (s *RedisRateLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration) {
	k := s.prefix + key
	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		s.logger.Warn("rate limit check failed, allowing request", "error", err)
		return true, 0
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			s.logger.Warn("failed to set rate limit window", "error", err)
		}
	}
	if count <= int64(limit) {
		return true, 0
	}
	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil || ttl <= 0 {
		// a counter without expiry would block the key forever
		s.client.PExpire(ctx, k, window)
		ttl = window
	}
	return false, ttl
}

// RateLimitMiddleware limits each client host to requestsPerMinute. Client
// supplied headers are ignored so a caller cannot pick its own key.
func RateLimitMiddleware(store RateLimitStore, requestsPerMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, retryAfter := store.Allow(r.Context(), clientKey(r), requestsPerMinute, rateLimitWindow)
			if !allowed {
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
