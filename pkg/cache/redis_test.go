package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// newTestRedis connects to RESUMAKE_TEST_REDIS_ADDR (default
// localhost:6379) under a unique prefix, skipping when no server answers.
func newTestRedis(t *testing.T, prefix string) *RedisCache {
	t.Helper()
	addr := os.Getenv("RESUMAKE_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: prefix, DialTimeout: 500 * time.Millisecond})
	if err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	t.Cleanup(func() {
		c.Clear(context.Background())
		c.Close()
	})
	return c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c := newTestRedis(t, "resumake-test:"+uuid.NewString()+":")

	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Fatalf("Get() on empty cache = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("<svg/>"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get() = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("hit after Delete")
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestRedis(t, "resumake-test:"+uuid.NewString()+":")

	if err := c.Set(ctx, "k", []byte("x"), 50*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("hit after expiry")
	}
}

func TestRedisCacheClearKeepsOtherPrefixes(t *testing.T) {
	ctx := context.Background()
	run := "resumake-test:" + uuid.NewString()
	a := newTestRedis(t, run+":a:")
	b := newTestRedis(t, run+":b:")

	for i, key := range []string{"1", "2", "3"} {
		if err := a.Set(ctx, key, []byte{byte(i)}, time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Set(ctx, "1", []byte("kept"), time.Minute); err != nil {
		t.Fatal(err)
	}

	if err := a.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	for _, key := range []string{"1", "2", "3"} {
		if _, hit, _ := a.Get(ctx, key); hit {
			t.Errorf("key %s survived Clear", key)
		}
	}
	data, hit, err := b.Get(ctx, "1")
	if err != nil || !hit || string(data) != "kept" {
		t.Errorf("other prefix Get() = %q, %v, %v", data, hit, err)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	// Port 1 is reserved and refuses connections.
	if _, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond}); err == nil {
		t.Error("NewRedisCache() against a closed port succeeded")
	}
}
