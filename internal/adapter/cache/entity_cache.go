package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"course-service/internal/domain/category"
	"course-service/internal/domain/user"
)

// EntityCache caches entities keyed by their numeric id.
type EntityCache[T any] interface {
	// Get retrieves an entity from cache by ID.
	// Returns nil if it is not in cache.
	Get(ctx context.Context, id int64) (*T, error)

	// Set stores an entity in cache with the configured TTL.
	Set(ctx context.Context, id int64, v *T) error

	// Delete removes entries from cache by IDs and bumps their generation,
	// so reads that started before the delete cannot store their result.
	Delete(ctx context.Context, ids ...int64) error

	// Generation returns the current generation of id, 0 if it was never invalidated.
	Generation(ctx context.Context, id int64) (int64, error)

	// SetIfGeneration stores v only while id is still at generation gen.
	// It reports whether the entry was written.
	SetIfGeneration(ctx context.Context, id int64, gen int64, v *T) (bool, error)
}

// minGenerationTTL bounds how long a generation counter outlives its entry.
// It must exceed the longest database read a cache fill can race with.
const minGenerationTTL = time.Minute

// setIfGeneration writes KEYS[1] only when the counter in KEYS[2] equals ARGV[1].
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[2])
if not gen then
	gen = "0"
end
if gen ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`)

// invalidate deletes each entry key and bumps the generation key that follows it.
var invalidate = redis.NewScript(`
for i = 1, #KEYS, 2 do
	redis.call("DEL", KEYS[i])
	redis.call("INCR", KEYS[i + 1])
	redis.call("PEXPIRE", KEYS[i + 1], ARGV[1])
end
return 1
`)

// RedisCache implements EntityCache using Redis as the backing store.
// Values are stored as JSON under "<prefix>:<id>".
type RedisCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisCache creates a new Redis-backed entity cache.
func NewRedisCache[T any](client *redis.Client, prefix string, ttl time.Duration, log *zap.Logger) *RedisCache[T] {
	return &RedisCache[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log.With(zap.String("cache", prefix)),
	}
}

// NewUserCache caches users under "user:<id>".
func NewUserCache(client *redis.Client, ttl time.Duration, log *zap.Logger) EntityCache[user.User] {
	return NewRedisCache[user.User](client, "user", ttl, log)
}

// NewCategoryCache caches categories under "category:<id>".
func NewCategoryCache(client *redis.Client, ttl time.Duration, log *zap.Logger) EntityCache[category.Category] {
	return NewRedisCache[category.Category](client, "category", ttl, log)
}

// Key returns the Redis key for id.
func (c *RedisCache[T]) Key(id int64) string {
	return fmt.Sprintf("%s:%d", c.prefix, id)
}

// GenerationKey returns the Redis key holding the generation counter of id.
func (c *RedisCache[T]) GenerationKey(id int64) string {
	return c.Key(id) + ":gen"
}

// Get retrieves an entity from Redis.
func (c *RedisCache[T]) Get(ctx context.Context, id int64) (*T, error) {
	data, err := c.client.Get(ctx, c.Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.Int64("id", id))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.log.Error("failed to unmarshal cached entity", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.Int64("id", id))
	return &v, nil
}

// Set stores an entity in Redis with TTL.
func (c *RedisCache[T]) Set(ctx context.Context, id int64, v *T) error {
	if v == nil {
		return fmt.Errorf("cannot cache nil %s", c.prefix)
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.log.Error("failed to marshal entity for cache", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, c.Key(id), data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.Int64("id", id), zap.Error(err))
		return err
	}

	c.log.Debug("cached entity", zap.Int64("id", id), zap.Duration("ttl", c.ttl))
	return nil
}

// Generation reads the generation counter of id.
func (c *RedisCache[T]) Generation(ctx context.Context, id int64) (int64, error) {
	gen, err := c.client.Get(ctx, c.GenerationKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		c.log.Error("failed to read cache generation", zap.Int64("id", id), zap.Error(err))
		return 0, err
	}
	return gen, nil
}

// SetIfGeneration stores v with TTL unless id was invalidated after gen was read.
func (c *RedisCache[T]) SetIfGeneration(ctx context.Context, id int64, gen int64, v *T) (bool, error) {
	if v == nil {
		return false, fmt.Errorf("cannot cache nil %s", c.prefix)
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.log.Error("failed to marshal entity for cache", zap.Int64("id", id), zap.Error(err))
		return false, err
	}

	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{c.Key(id), c.GenerationKey(id)},
		strconv.FormatInt(gen, 10), data, c.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		c.log.Error("failed to set cache", zap.Int64("id", id), zap.Error(err))
		return false, err
	}

	if stored == 0 {
		c.log.Debug("entity invalidated during read, not cached", zap.Int64("id", id), zap.Int64("generation", gen))
		return false, nil
	}
	c.log.Debug("cached entity", zap.Int64("id", id), zap.Duration("ttl", c.ttl))
	return true, nil
}

// Delete removes entries from Redis and bumps their generations.
func (c *RedisCache[T]) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, 2*len(ids))
	for _, id := range ids {
		keys = append(keys, c.Key(id), c.GenerationKey(id))
	}

	if err := invalidate.Run(ctx, c.client, keys, max(c.ttl, minGenerationTTL).Milliseconds()).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.Int("count", len(ids)), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.Int("count", len(ids)))
	return nil
}
