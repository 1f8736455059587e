// Package redis holds the Redis-backed throttling infrastructure. The only
// state kept here is short-lived counters; nothing in Redis is a system of
// record.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config captures the connection settings for the throttle store.
type Config struct {
	Addr string
	DB   int
}

// Connect builds a Redis client and verifies connectivity with a bounded
// ping before handing it out.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
