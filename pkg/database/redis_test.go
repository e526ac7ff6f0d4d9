package database

import (
	"testing"

	"learnhub_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedisDisabled(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Host: "127.0.0.1", Port: 1})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestInitRedisUnreachable(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1, DB: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.Nil(t, rdb)
}

func TestRedisOptions(t *testing.T) {
	opts := RedisOptions(&config.RedisConfig{Host: "cache", Port: 6380, Password: "pw", DB: 3})
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Positive(t, opts.DialTimeout)
}
