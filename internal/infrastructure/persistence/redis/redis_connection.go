// Package redis provides the Redis-backed blob reference cache, used when the
// gateway runs in a multi-replica deployment where a local database would
// fragment the cache.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg *config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to connect to redis")
	}

	log.Info(ctx, "redis ready", logger.Fields{"address": cfg.Address})
	return client, nil
}
