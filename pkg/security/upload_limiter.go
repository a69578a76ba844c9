package security

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter enforces per-IP and per-user upload quotas with a sliding
// window. Redis backs the window when a client is supplied; otherwise the
// limiter keeps the window in process memory.
type UploadLimiter struct {
	client       *goredis.Client
	maxPerMinute int // per IP
	maxPerDay    int // per user

	mu        sync.Mutex
	memory    map[string]*uploadWindow
	lastSweep int64
	now       func() time.Time
}

type uploadWindow struct {
	size int64
	hits []int64
}

// memorySweepInterval is how often (seconds) idle in-memory windows are dropped
const memorySweepInterval = 300

// Lua script for sliding window rate limiting
// KEYS[1] = rate limit key
// ARGV[1] = max count allowed
// ARGV[2] = window size in seconds
// ARGV[3] = current timestamp
// Returns: 1 if allowed, 0 if rate limited
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter creates an upload rate limiter. client may be nil.
// Defaults: 10 uploads/min per IP, 50 uploads/day per user.
func NewUploadLimiter(client *goredis.Client, perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 50
	}
	return &UploadLimiter{
		client:       client,
		maxPerMinute: perMin,
		maxPerDay:    perDay,
		memory:       make(map[string]*uploadWindow),
		now:          time.Now,
	}
}

// AllowUpload returns (allowed, retryAfterSeconds, error). Redis errors
// fail closed.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip, userID string) (bool, int, error) {
	now := ul.now().Unix()

	ipKey := fmt.Sprintf("ratelimit:upload:ip:%s", ip)
	allowed, err := ul.checkLimit(ctx, ipKey, ul.maxPerMinute, 60, now)
	if err != nil {
		return false, 60, fmt.Errorf("rate limit check failed: %w", err)
	}
	if !allowed {
		return false, 60, nil
	}

	if userID != "" {
		userKey := fmt.Sprintf("ratelimit:upload:user:%s", userID)
		allowed, err = ul.checkLimit(ctx, userKey, ul.maxPerDay, 86400, now)
		if err != nil {
			return false, 3600, fmt.Errorf("rate limit check failed: %w", err)
		}
		if !allowed {
			return false, 3600, nil
		}
	}

	return true, 0, nil
}

func (ul *UploadLimiter) checkLimit(ctx context.Context, key string, limit, window int, now int64) (bool, error) {
	if ul.client == nil {
		return ul.checkMemory(key, limit, window, now), nil
	}
	result, err := ul.client.Eval(ctx, uploadRateLimitScript, []string{key}, limit, window, now).Result()
	if err != nil {
		return false, err
	}
	allowed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected result type from rate limit script")
	}
	return allowed == 1, nil
}

func (ul *UploadLimiter) checkMemory(key string, limit, window int, now int64) bool {
	ul.mu.Lock()
	defer ul.mu.Unlock()

	ul.sweepMemory(now)

	w, ok := ul.memory[key]
	if !ok {
		w = &uploadWindow{size: int64(window)}
		ul.memory[key] = w
	}
	w.hits = liveHits(w.hits, now-w.size)
	if len(w.hits) >= limit {
		return false
	}
	w.hits = append(w.hits, now)
	return true
}

// sweepMemory drops windows with no hit inside their range. Caller holds mu.
func (ul *UploadLimiter) sweepMemory(now int64) {
	if now-ul.lastSweep < memorySweepInterval {
		return
	}
	ul.lastSweep = now
	for key, w := range ul.memory {
		if w.hits = liveHits(w.hits, now-w.size); len(w.hits) == 0 {
			delete(ul.memory, key)
		}
	}
}

func liveHits(hits []int64, cutoff int64) []int64 {
	live := hits[:0]
	for _, ts := range hits {
		if ts > cutoff {
			live = append(live, ts)
		}
	}
	return live
}
