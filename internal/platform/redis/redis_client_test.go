package redis

import (
	"context"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "secret")

	cfg, err := LoadConfigFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "cache:6380", cfg.Addr())
	assert.Equal(t, "secret", cfg.Password)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	rdb, err := NewRedisClient(context.Background(), Config{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	assert.NoError(t, rdb.Ping(context.Background()).Err())
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), Config{Host: host, Port: port})

	assert.Error(t, err)
	assert.Nil(t, rdb)
}
