package render

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backend shared across processes: rendered text
// lives in a hash and insertion order in a list, both under one prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "render"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) entriesKey() string { return s.prefix + ":entries" }
func (s *RedisStore) orderKey() string   { return s.prefix + ":order" }

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	text, err := s.client.HGet(ctx, s.entriesKey(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, text string) error {
	exists, err := s.client.HExists(ctx, s.entriesKey(), key).Result()
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.RPush(ctx, s.orderKey(), key).Err(); err != nil {
			return err
		}
	}
	return s.client.HSet(ctx, s.entriesKey(), key, text).Err()
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	n, err := s.client.HLen(ctx, s.entriesKey()).Result()
	return int(n), err
}

func (s *RedisStore) Shed(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	n, err := s.client.LLen(ctx, s.orderKey()).Result()
	if err != nil {
		return 0, err
	}
	evict := int(n) - keep
	if evict <= 0 {
		return 0, nil
	}

	oldest, err := s.client.LRange(ctx, s.orderKey(), 0, int64(evict-1)).Result()
	if err != nil {
		return 0, err
	}
	if len(oldest) > 0 {
		if err := s.client.HDel(ctx, s.entriesKey(), oldest...).Err(); err != nil {
			return 0, err
		}
	}
	if err := s.client.LTrim(ctx, s.orderKey(), int64(evict), -1).Err(); err != nil {
		return 0, err
	}
	return len(oldest), nil
}
