package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Requests wait on the limiter inline, so command timeouts stay short; the limiter fails open on them.
const (
	connectTimeout = 5 * time.Second
	commandTimeout = 500 * time.Millisecond
)

// Config holds Redis connection configuration.
type Config struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
}

// Addr returns the host:port address of the server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Options translates the config into go-redis options.
func (c Config) Options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		MaxRetries:   c.MaxRetries,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConn,
		DialTimeout:  connectTimeout,
		ReadTimeout:  commandTimeout,
		WriteTimeout: commandTimeout,
		PoolTimeout:  commandTimeout,
	}
}

// Client is the pooled connection backing the rate limiter.
type Client struct {
	*redis.Client
	addr string
	log  *zap.Logger
}

// NewClient opens a pool and pings it once; ctx bounds the ping together with connectTimeout.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	c := &Client{
		Client: redis.NewClient(cfg.Options()),
		addr:   cfg.Addr(),
		log:    log.With(zap.String("redis_addr", cfg.Addr())),
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := c.Ping(pingCtx); err != nil {
		_ = c.Client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", c.addr, err)
	}

	c.log.Info("redis ready", zap.Int("db", cfg.DB), zap.Int("pool_size", cfg.PoolSize))

	return c, nil
}

// Ping reports whether the server answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// Close releases the pool.
func (c *Client) Close() error {
	c.log.Info("redis closing")
	return c.Client.Close()
}
