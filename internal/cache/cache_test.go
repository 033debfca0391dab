package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journal/internal/config"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := newRedis(t)
	ctx := context.Background()

	var got sample
	hit, err := c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "k", sample{Name: "calm", Count: 2}, time.Minute))
	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, sample{Name: "calm", Count: 2}, got)

	mr.FastForward(2 * time.Minute)
	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	c, mr := newRedis(t)
	ctx := context.Background()

	for _, k := range []string{"insights:a:1", "insights:a:2", "insights:b:1"} {
		require.NoError(t, c.Set(ctx, k, 1, time.Minute))
	}
	require.NoError(t, c.DeletePrefix(ctx, "insights:a:"))

	assert.False(t, mr.Exists("insights:a:1"))
	assert.False(t, mr.Exists("insights:a:2"))
	assert.True(t, mr.Exists("insights:b:1"))
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c, mr := newRedis(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	var got sample
	_, err := c.Get(context.Background(), "bad", &got)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	c := New(ctx, &config.AppConfig{}, zerolog.Nop())
	assert.IsType(t, NopCache{}, c)

	mr := miniredis.RunT(t)
	c = New(ctx, &config.AppConfig{RedisAddr: mr.Addr()}, zerolog.Nop())
	t.Cleanup(func() { _ = c.Close() })
	assert.IsType(t, &RedisCache{}, c)
	assert.NoError(t, c.Ping(ctx))

	mr.Close()
	c = New(ctx, &config.AppConfig{RedisAddr: mr.Addr()}, zerolog.Nop())
	assert.IsType(t, NopCache{}, c)
}
