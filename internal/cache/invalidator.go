package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Invalidator tells the view layer which paths to refetch after a mutation.
// Paths are published on a Redis channel, fire-and-forget: services never
// wait on it and a publish failure is only logged.
type Invalidator struct {
	client  *redis.Client
	channel string
	logr    *zap.Logger
}

// New connects to Redis and returns an Invalidator. An empty URL returns a
// disabled instance whose Invalidate is a no-op.
func New(redisURL, channel string, logr *zap.Logger) (*Invalidator, error) {
	if redisURL == "" {
		logr.Info("cache invalidation disabled, no redis url configured")
		return &Invalidator{channel: channel, logr: logr}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Invalidator{client: client, channel: channel, logr: logr}, nil
}

// Invalidate publishes the given view paths without blocking the caller.
func (i *Invalidator) Invalidate(paths ...string) {
	if i == nil || i.client == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		for _, p := range paths {
			if err := i.client.Publish(ctx, i.channel, p).Err(); err != nil {
				i.logr.Warn("cache invalidation publish failed", zap.String("path", p), zap.Error(err))
			}
		}
	}()
}

// Close releases the Redis connection.
func (i *Invalidator) Close() error {
	if i == nil || i.client == nil {
		return nil
	}
	return i.client.Close()
}
