package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"attendance-service/internal/config"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestTickLock_ExclusiveUntilReleased(t *testing.T) {
	mr, client := setupMiniredis(t)
	lock := NewTickLock(client, "attendance:lock:", zap.NewNop())
	ctx := context.Background()

	release, ok, err := lock.Acquire(ctx, "absence", 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("attendance:lock:absence"))

	_, ok, err = lock.Acquire(ctx, "absence", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must not acquire")

	release()
	assert.False(t, mr.Exists("attendance:lock:absence"))

	_, ok, err = lock.Acquire(ctx, "absence", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTickLock_ExpiresAfterTTL(t *testing.T) {
	mr, client := setupMiniredis(t)
	lock := NewTickLock(client, "lock:", zap.NewNop())
	ctx := context.Background()

	_, ok, err := lock.Acquire(ctx, "notify", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = lock.Acquire(ctx, "notify", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTickLock_ReleaseDoesNotDeleteForeignLock(t *testing.T) {
	mr, client := setupMiniredis(t)
	lock := NewTickLock(client, "lock:", zap.NewNop())
	ctx := context.Background()

	release, ok, err := lock.Acquire(ctx, "absence", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// lock expired and was taken by another replica
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("lock:absence", "other-replica"))

	release()
	got, err := mr.Get("lock:absence")
	require.NoError(t, err)
	assert.Equal(t, "other-replica", got)
}

func TestTickLock_NilClientAlwaysAcquires(t *testing.T) {
	lock := NewTickLock(nil, "lock:", zap.NewNop())

	for i := 0; i < 2; i++ {
		release, ok, err := lock.Acquire(context.Background(), "absence", time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
		release()
	}
}

func TestNewRedis(t *testing.T) {
	client, err := NewRedis(context.Background(), config.RedisConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	client, err = NewRedis(context.Background(), config.RedisConfig{Enabled: true, Addr: mr.Addr()}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, client)
	_ = client.Close()

	_, err = NewRedis(context.Background(), config.RedisConfig{Enabled: true, URL: "://bad"}, zap.NewNop())
	assert.Error(t, err)
}
