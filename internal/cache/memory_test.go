package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("expected hit with v, got %q found=%v", val, found)
	}

	if c.Len() != 1 {
		t.Errorf("expected 1 item, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	_ = c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Error("expected a to be deleted")
	}

	_ = c.Clear()
	if _, found := c.Get("b"); found {
		t.Error("expected cache to be cleared")
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("params", "GENERAL", "claim")
	b := CacheKey("params", "GENERAL", "claim")
	if a != b {
		t.Error("expected deterministic keys")
	}

	// Part boundaries matter
	if CacheKey("ab", "c") == CacheKey("a", "bc") {
		t.Error("expected different keys for different part boundaries")
	}

	if len(a) != len("veriabyss:v1:")+64 {
		t.Errorf("unexpected key length %d", len(a))
	}
}
