package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis using the given settings. An empty addr
// disables caching. If the server is unreachable at startup the function
// returns nil and callers degrade gracefully by serving uncached reads.
func NewRedisClient(addr, password string, db int, log *zap.Logger) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if log != nil {
			log.Warn("redis unreachable, availability caching disabled",
				zap.String("addr", addr), zap.Error(err))
		}
		_ = client.Close()
		return nil
	}
	return client
}
