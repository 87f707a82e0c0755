package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "storefront:cache:"
const tagPrefix = "storefront:tag:"

// RedisStore keeps entries as JSON values with a TTL and tracks tag
// membership in Redis sets, so invalidating a tag deletes every entry
// recorded under it. Cache failures are logged and degrade to misses; a
// broken cache must never break a read.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func (s *RedisStore) Get(ctx context.Context, key string, dest any) bool {
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("Cache entry undecodable", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, tags ...string) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Cache value unserializable", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.client.Set(ctx, keyPrefix+key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
		return
	}
	for _, tag := range tags {
		if err := s.client.SAdd(ctx, tagPrefix+tag, keyPrefix+key).Err(); err != nil {
			s.logger.Warn("Cache tag index write failed", zap.Error(err), zap.String("tag", tag))
		}
	}
}

func (s *RedisStore) Invalidate(ctx context.Context, tag string) (int, error) {
	members, err := s.client.SMembers(ctx, tagPrefix+tag).Result()
	if err != nil {
		return 0, err
	}
	if len(members) > 0 {
		if err := s.client.Del(ctx, members...).Err(); err != nil {
			return 0, err
		}
	}
	if err := s.client.Del(ctx, tagPrefix+tag).Err(); err != nil {
		return len(members), err
	}
	return len(members), nil
}
