package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedis(t)

	require.NoError(t, c.Set(ctx, "auth_abc", "42", time.Hour))

	v, err := c.Get(ctx, "auth_abc")
	require.NoError(t, err)
	assert.Equal(t, "42", v)
	assert.Equal(t, time.Hour, mr.TTL("auth_abc"))

	require.NoError(t, c.Delete(ctx, "auth_abc"))
	_, err = c.Get(ctx, "auth_abc")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, c.Delete(ctx, "never-set"))
}

func TestRedisCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedis(t)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(61 * time.Second)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRedisCache_Unreachable(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedis(t)
	mr.Close()

	_, err := c.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.Error(t, c.Ping(ctx))
}

func TestDialRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	addr := mr.Addr()

	c, err := DialRedis(context.Background(), addr, "", 0)
	require.NoError(t, err)
	assert.NoError(t, c.Ping(context.Background()))
	_ = c.Close()

	mr.Close()
	_, err = DialRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
