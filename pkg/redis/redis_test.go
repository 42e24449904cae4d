package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(mr *miniredis.Miniredis) Config {
	return Config{
		Host:     mr.Host(),
		Port:     mr.Port(),
		PoolSize: 2,
	}
}

func TestNewClient_Success(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewClient(context.Background(), testConfig(mr), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(mr)
	mr.Close()

	c, err := NewClient(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, "localhost:6379", Config{Host: "localhost", Port: "6379"}.Addr())
}

func TestConfig_Options(t *testing.T) {
	opts := Config{Host: "redis", Port: "6380", DB: 2, PoolSize: 5, MinIdleConn: 1, MaxRetries: 3}.Options()

	assert.Equal(t, "redis:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5, opts.PoolSize)
	assert.Equal(t, 1, opts.MinIdleConns)
	assert.Equal(t, 3, opts.MaxRetries)
	assert.Equal(t, commandTimeout, opts.ReadTimeout)
}

func TestNewClient_CanceledContext(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := NewClient(ctx, testConfig(mr), zaptest.NewLogger(t))
	assert.Nil(t, c)
	require.Error(t, err)
}

func TestClient_RunsScripts(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewClient(context.Background(), testConfig(mr), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	n, err := c.Eval(context.Background(), "return redis.call('INCR', KEYS[1])", []string{"hits"}).Int()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
