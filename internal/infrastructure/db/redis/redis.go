// Package redis holds the Redis connection helper and the login throttle
// backed by it. Redis is soft state here: losing it resets failure counters
// but never affects stored users, assignments or submissions.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

type Config struct {
	Addr string
	DB   int
	// PingTimeout bounds the startup connectivity check only; it is not a
	// per-command timeout. Zero means defaultPingTimeout.
	PingTimeout time.Duration
}

// Connect opens a client against cfg.Addr and verifies it answers a ping
// before handing it out, so a misconfigured address fails at startup rather
// than at the first login attempt.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}
