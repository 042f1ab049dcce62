package workspace

import "time"

// DefaultTTL is how long an upload is kept when no TTL is configured.
const DefaultTTL = time.Hour

// MemoryOption configures the memory store.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	ttl             time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		ttl:             DefaultTTL,
		cleanupInterval: time.Minute,
		maxEntries:      100,
	}
}

// WithTTL sets how long uploads are kept. Zero or negative keeps them until
// evicted.
// Default: 1 hour.
func WithTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.ttl = d
	}
}

// WithCleanupInterval sets how often the janitor removes expired uploads.
// Zero disables the janitor.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries caps the number of uploads kept. Zero means unlimited.
// Default: 100.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}

// RedisOption configures the Redis store.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
	ttl    time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{
		prefix: "exammail:upload",
		ttl:    DefaultTTL,
	}
}

// WithRedisTTL sets the key expiration. Zero or negative stores keys
// without expiration.
// Default: 1 hour.
func WithRedisTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.ttl = d
	}
}

// WithPrefix sets the key prefix. Keys are stored as "{prefix}:{id}".
// Default: "exammail:upload".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}
