package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/oforha-backend/internal/config"
)

type profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := Connect(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "test:"), mr
}

func TestSetAndGet(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	expected := profile{ID: "1", Username: "alice"}
	require.NoError(t, c.Set(ctx, "user:1", expected, time.Minute))
	assert.True(t, mr.Exists("test:user:1"))

	var actual profile
	found, err := c.Get(ctx, "user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestExpiration(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user:1", profile{ID: "1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out profile
	found, err := c.Get(ctx, "user:1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetNotFound(t *testing.T) {
	c, _ := setupTestCache(t)

	var out profile
	found, err := c.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSet_Expires(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", time.Minute))
	mr.FastForward(2 * time.Minute)

	var out string
	found, err := c.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	c, mr := setupTestCache(t)
	require.NoError(t, mr.Set("test:bad", "not-json"))

	var out profile
	found, err := c.Get(context.Background(), "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestGet_ServerDown(t *testing.T) {
	c, mr := setupTestCache(t)
	mr.Close()

	var out profile
	_, err := c.Get(context.Background(), "user:1", &out)
	assert.Error(t, err)
}

func TestConnectInvalidAddr(t *testing.T) {
	client, err := Connect(context.Background(), config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	})
	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c Noop
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var out int
	found, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
