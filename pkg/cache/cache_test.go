package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	key := Key("svg", "INPUT A\nOUTPUT B A\n", "highlight")

	// Miss before set.
	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get before Set = ok %v, err %v; want miss", ok, err)
	}

	if err := c.Set(ctx, key, []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get after Set = ok %v, err %v", ok, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("data = %q, want <svg/>", data)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("Get after Delete should miss")
	}

	// Deleting again is fine.
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry served as hit")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("NullCache Get = ok %v, err %v; want miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestKey(t *testing.T) {
	a := Key("svg", "netlist-a", true)
	b := Key("svg", "netlist-b", true)
	if a == b {
		t.Error("different inputs produced the same key")
	}

	if again := Key("svg", "netlist-a", true); again != a {
		t.Error("same inputs produced different keys")
	}

	if !strings.HasPrefix(a, "svg:") {
		t.Errorf("key %q missing namespace prefix", a)
	}

	if other := Key("png", "netlist-a", true); other == a {
		t.Error("namespace not part of the key")
	}
}
