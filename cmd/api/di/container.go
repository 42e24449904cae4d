package di

import (
	"context"
	"errors"
	"fmt"

	"wegrowup-api/cmd/api/infrastructure"
	ginhandler "wegrowup-api/internal/adapter/gin/handler"
	"wegrowup-api/internal/config"
	"wegrowup-api/internal/usecase/user"
	"wegrowup-api/pkg/metrics"
	"wegrowup-api/pkg/ratelimit"
	redisclient "wegrowup-api/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	RedisClient *redisclient.Client // nil unless rate limiting is enabled
	RateLimiter *ratelimit.Limiter
	Metrics     *metrics.Metrics // nil when metrics are disabled
	UserUC      user.Usecase
	GinHandler  *ginhandler.DataHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: l,
	}

	// Redis only backs the rate limiter, so skip the connection when it is off
	var scripter goredis.Scripter
	if cfg.RateLimit.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
		scripter = rdb.Client
	}

	c.RateLimiter = ratelimit.New(scripter, ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstCapacity:     cfg.RateLimit.BurstCapacity,
		Enabled:           cfg.RateLimit.Enabled,
	}, l)

	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New(cfg.Metrics.Namespace)
	}

	c.UserUC = user.New(l)
	c.GinHandler = ginhandler.NewDataHandler(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %w", errors.Join(errs...))
	}

	return nil
}
