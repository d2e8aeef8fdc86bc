package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vkyc/internal/platform/config"
)

func TestOptionsAppliesPoolSettings(t *testing.T) {
	opts, err := Options(config.RedisConfig{
		URL:          "redis://:secret@cache.internal:6380/2",
		PoolSize:     20,
		MinIdleConns: 4,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
	assert.Equal(t, 2*time.Second, opts.DialTimeout)
}

func TestOptionsKeepsDefaultsForZeroValues(t *testing.T) {
	opts, err := Options(config.RedisConfig{URL: "redis://localhost:6379/0"})
	require.NoError(t, err)
	assert.Zero(t, opts.PoolSize)
	assert.Zero(t, opts.MinIdleConns)
}

func TestOptionsRejectsBadURL(t *testing.T) {
	_, err := Options(config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
}

func TestNewWithoutURLReturnsNil(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}
