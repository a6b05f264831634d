package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/blog-platform/internal/config"
)

const denyPrefix = "token:denied:"

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &RedisClient{client: c}, nil
}

func (r *RedisClient) Close() error { return r.client.Close() }

// DenyToken marks a JWT ID as revoked until the token's own expiry, after
// which the key lapses on its own.
func (r *RedisClient) DenyToken(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, denyPrefix+jti, "1", ttl).Err()
}

func (r *RedisClient) IsTokenDenied(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, denyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
