package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGetString(t *testing.T) {
	mc := NewMemoryCache()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "locked", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got string
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "locked" {
		t.Errorf("got %q, want locked", got)
	}
}

func TestMemoryCacheStructRoundTrip(t *testing.T) {
	type payload struct {
		Symbol string  `json:"symbol"`
		Size   float64 `json:"size"`
	}
	mc := NewMemoryCache()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", payload{Symbol: "ETHUSDT", Size: 1.5}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got payload
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "ETHUSDT" || got.Size != 1.5 {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	var got string
	if err := mc.Get(context.Background(), "absent", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 20*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(40 * time.Millisecond)

	var got string
	if err := mc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expiry, err = %v", err)
	}
}

func TestMemoryCacheZeroExpirationNeverExpires(t *testing.T) {
	mc := NewMemoryCache()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	exists, err := mc.Exists(ctx, "k")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("key with zero expiration should persist")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	ctx := context.Background()

	mc.Set(ctx, "a", "1", 0)
	mc.Set(ctx, "b", "2", 0)
	if err := mc.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, key := range []string{"a", "b"} {
		if exists, _ := mc.Exists(ctx, key); exists {
			t.Errorf("key %q survived delete", key)
		}
	}
}
