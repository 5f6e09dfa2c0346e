package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist хранит отозванные токены до их естественного истечения
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type RedisBlacklist struct {
	rdb *redis.Client
}

func NewRedisBlacklist(rdb *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{rdb: rdb}
}

func (b *RedisBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	return b.rdb.Set(ctx, "blacklist:"+token, 1, ttl).Err()
}

func (b *RedisBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	exists, err := b.rdb.Exists(ctx, "blacklist:"+token).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
