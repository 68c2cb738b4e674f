package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ConnectOptions controls how NewClient waits for Redis to come up.
type ConnectOptions struct {
	// MaxElapsed bounds the total time spent retrying the initial ping.
	// Zero means a single attempt.
	MaxElapsed      time.Duration
	InitialInterval time.Duration
	Logger          zerolog.Logger
}

// NewClient creates a new Redis client and pings it until it answers or
// opts.MaxElapsed runs out.
func NewClient(ctx context.Context, redisURL string, opts ConnectOptions) (*redis.Client, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)

	if err := pingWithRetry(ctx, client, opts); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func pingWithRetry(ctx context.Context, client *redis.Client, opts ConnectOptions) error {
	if opts.MaxElapsed <= 0 {
		return client.Ping(ctx).Err()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	if opts.InitialInterval > 0 {
		b.InitialInterval = opts.InitialInterval
	}
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = opts.MaxElapsed

	attempt := 0

	return backoff.Retry(func() error {
		attempt++
		err := client.Ping(ctx).Err()
		if err != nil {
			opts.Logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Msg("redis not reachable, retrying")
		}
		return err
	}, backoff.WithContext(b, ctx))
}
