package otp

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeNotFound = errors.New("otp code not found")

// Store keeps phone → code with a TTL. Backed by Redis so expiry and
// concurrent access are handled outside the process.
type Store interface {
	Set(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.client.Set(ctx, key(phone), code, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, key(phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCodeNotFound
		}
		return "", err
	}
	return code, nil
}

func (s *redisStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, key(phone)).Err()
}

func key(phone string) string {
	return "otp:" + phone
}
