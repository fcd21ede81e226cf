package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JeanneDioso/storefront/internal/config"
	"github.com/go-redis/redis/v8"
)

// NewClient connects to the redis instance backing the login throttle.
// The throttle store is a hard dependency: startup fails if redis is
// unreachable, and the login path surfaces store errors instead of
// bypassing the throttle.
func NewClient(cfg *config.RedisConfig, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	logger.Info("redis connection established", slog.String("addr", cfg.Addr()))

	return client, nil
}
