package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache skips the test unless TEST_REDIS_ADDR points at a reachable Redis.
func newTestCache(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("skipping Redis integration tests: TEST_REDIS_ADDR is not set")
	}

	c := NewRedisCache(addr, "foodorder-test-"+uuid.NewString())
	t.Cleanup(func() { _ = c.Close() })

	if err := c.Ping(context.Background()); err != nil {
		t.Skipf("skipping Redis integration tests: %v", err)
	}

	return c
}

func TestGenerateKey(t *testing.T) {
	c := NewRedisCache("localhost:6379", "foodorder")
	defer c.Close()

	key := c.GenerateKey("calories", []byte("abc"))
	assert.Equal(t, "foodorder:calories:ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", key)
	assert.NotEqual(t, key, c.GenerateKey("cost", []byte("abc")))
	assert.NotEqual(t, key, c.GenerateKey("calories", []byte("abd")))
}

func TestGetMissReturnsEmpty(t *testing.T) {
	c := newTestCache(t)

	value, err := c.Get(context.Background(), c.GenerateKey("calories", []byte("never stored")))
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSetThenGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := c.GenerateKey("cost", []byte("pizza"))

	require.NoError(t, c.Set(ctx, key, "$14", time.Minute))

	value, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "$14", value)
}

func TestSetExpires(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := c.GenerateKey("calories", []byte("soup"))

	require.NoError(t, c.Set(ctx, key, "About 200 kcal", 50*time.Millisecond))

	require.Eventually(t, func() bool {
		value, err := c.Get(ctx, key)
		return err == nil && value == ""
	}, 2*time.Second, 20*time.Millisecond)
}

func TestUnreachableRedis(t *testing.T) {
	c := NewRedisCache("127.0.0.1:1", "foodorder")
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))

	_, err := c.Get(ctx, "foodorder:calories:x")
	assert.Error(t, err)
}
