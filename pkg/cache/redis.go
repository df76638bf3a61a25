package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lehrteam/stundenplan-api/pkg/config"
)

// NewRedis returns a configured Redis client. Besides caching it carries
// the pub/sub change feed that keeps week snapshots fresh across clients.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
