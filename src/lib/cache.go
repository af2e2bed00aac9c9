package lib

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectCache opens a Redis connection and verifies it with a ping.
// URL should be a redis:// connection string, e.g. redis://localhost:6379
func ConnectCache(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
