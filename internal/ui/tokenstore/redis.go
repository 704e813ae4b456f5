package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ui:session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore stores tokens under ui:session:<id>. Entries expire after ttl,
// which should match the token lifetime.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, session string) (string, error) {
	token, err := s.client.Get(ctx, keyPrefix+session).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get session token: %w", err)
	}
	return token, nil
}

func (s *redisStore) Set(ctx context.Context, session, token string) error {
	if err := s.client.Set(ctx, keyPrefix+session, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session token: %w", err)
	}
	return nil
}

func (s *redisStore) Remove(ctx context.Context, session string) error {
	if err := s.client.Del(ctx, keyPrefix+session).Err(); err != nil {
		return fmt.Errorf("redis delete session token: %w", err)
	}
	return nil
}
