package security

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// PasswordAttemptConfig bounds failed current-password checks per account
type PasswordAttemptConfig struct {
	MaxAttempts   int           // failures before a block (default: 5)
	AttemptWindow time.Duration // window the failures are counted in (default: 15min)
	BlockDuration time.Duration // how long the block lasts (default: 15min)
}

func DefaultPasswordAttemptConfig() PasswordAttemptConfig {
	return PasswordAttemptConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// PasswordAttemptTracker counts failed password confirmations and blocks
// the account once the limit is reached. Redis holds the counters when a
// client is supplied. A nil tracker never blocks.
type PasswordAttemptTracker struct {
	client *goredis.Client
	config PasswordAttemptConfig
	audit  *AuditLogger

	mu     sync.Mutex
	memory map[string]*attemptEntry
	now    func() time.Time
}

type attemptEntry struct {
	count        int
	windowEnd    time.Time
	blockedUntil time.Time
}

// Redis key patterns
const (
	failPasswordPrefix    = "fail:password:user:"
	blockedPasswordPrefix = "blocked:password:user:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func NewPasswordAttemptTracker(client *goredis.Client, config PasswordAttemptConfig, audit *AuditLogger) *PasswordAttemptTracker {
	defaults := DefaultPasswordAttemptConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = defaults.AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = defaults.BlockDuration
	}
	return &PasswordAttemptTracker{
		client: client,
		config: config,
		audit:  audit,
		memory: make(map[string]*attemptEntry),
		now:    time.Now,
	}
}

// IsBlocked reports whether userID is currently blocked
func (t *PasswordAttemptTracker) IsBlocked(ctx context.Context, userID string) (bool, error) {
	if t == nil {
		return false, nil
	}
	if t.client == nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		entry, ok := t.memory[userID]
		return ok && t.now().Before(entry.blockedUntil), nil
	}

	exists, err := t.client.Exists(ctx, blockedPasswordPrefix+userID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check password block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailure counts one failed attempt. It returns (blocked, attempts, error).
func (t *PasswordAttemptTracker) RecordFailure(ctx context.Context, userID string) (bool, int, error) {
	if t == nil {
		return false, 0, nil
	}

	var count int
	if t.client == nil {
		count = t.incrementMemory(userID)
	} else {
		var err error
		count, err = t.incrementRedis(ctx, failPasswordPrefix+userID)
		if err != nil {
			return false, 0, fmt.Errorf("failed to increment password attempts: %w", err)
		}
	}

	if count < t.config.MaxAttempts {
		return false, count, nil
	}
	if err := t.block(ctx, userID); err != nil {
		return true, count, fmt.Errorf("failed to create block: %w", err)
	}
	t.audit.Log(ctx, AuditEvent{
		Event:   EventPasswordBlocked,
		ActorID: userID,
		Details: map[string]any{
			"attempts":      count,
			"block_minutes": int(t.config.BlockDuration.Minutes()),
		},
	})
	return true, count, nil
}

// Clear resets the counter after a successful confirmation
func (t *PasswordAttemptTracker) Clear(ctx context.Context, userID string) error {
	if t == nil {
		return nil
	}
	if t.client == nil {
		t.mu.Lock()
		delete(t.memory, userID)
		t.mu.Unlock()
		return nil
	}
	if err := t.client.Del(ctx, failPasswordPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to clear password attempts: %w", err)
	}
	return nil
}

func (t *PasswordAttemptTracker) incrementRedis(ctx context.Context, key string) (int, error) {
	ttlSeconds := int(t.config.AttemptWindow.Seconds())
	result, err := t.client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

func (t *PasswordAttemptTracker) incrementMemory(userID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	entry, ok := t.memory[userID]
	if !ok || now.After(entry.windowEnd) {
		entry = &attemptEntry{windowEnd: now.Add(t.config.AttemptWindow), blockedUntil: entryBlock(entry)}
		t.memory[userID] = entry
	}
	entry.count++
	return entry.count
}

func entryBlock(entry *attemptEntry) time.Time {
	if entry == nil {
		return time.Time{}
	}
	return entry.blockedUntil
}

func (t *PasswordAttemptTracker) block(ctx context.Context, userID string) error {
	if t.client == nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		entry := t.memory[userID]
		entry.blockedUntil = t.now().Add(t.config.BlockDuration)
		entry.count = 0
		return nil
	}

	if err := t.client.Set(ctx, blockedPasswordPrefix+userID, "1", t.config.BlockDuration).Err(); err != nil {
		return err
	}
	return t.client.Del(ctx, failPasswordPrefix+userID).Err()
}
