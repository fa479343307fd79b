package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sess:"

// RedisStore keeps sessions in Redis with a native TTL per key, so expiry
// needs no sweeping at all. Keys are namespaced under "sess:".
type RedisStore struct{ rdb *redis.Client }

// NewRedisStore returns a Store backed by the given Redis client. The
// client must be non-nil and already pinged.
func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) Put(ctx context.Context, tokenHash string, userID uint64, ttl time.Duration) error {
	return s.rdb.Set(ctx, redisKeyPrefix+tokenHash, strconv.FormatUint(userID, 10), ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, tokenHash string) (uint64, error) {
	v, err := s.rdb.Get(ctx, redisKeyPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, ErrNoSession
	}
	return id, nil
}

func (s *RedisStore) Delete(ctx context.Context, tokenHash string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+tokenHash).Err()
}
