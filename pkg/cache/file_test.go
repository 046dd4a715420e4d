package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	exerciseStore(t, c)
}

func TestFileCachePersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c1, _ := NewFileCache(dir)
	if err := c1.Set(ctx, "token", []byte("jwt"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	c2, _ := NewFileCache(dir)
	data, hit, err := c2.Get(ctx, "token")
	if err != nil || !hit || string(data) != "jwt" {
		t.Errorf("second instance Get = %q, %v, %v", data, hit, err)
	}
}

func TestFileCacheExpired(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	_ = os.MkdirAll(filepath.Dir(path), 0700)
	if err := os.WriteFile(path, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry Get = %v, %v; want miss", hit, err)
	}
}

func TestFileCachePermissions(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "token", []byte("secret"), 0)

	info, err := os.Stat(c.path("token"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("entry mode = %o, want 600", perm)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	_ = c.Set(ctx, "http:events:all", []byte("1"), 0)
	_ = c.Set(ctx, "http:genres:all", []byte("2"), 0)
	_ = c.Set(ctx, "token", []byte("3"), 0)

	n, err := c.Clear(ctx, "http:")
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear removed %d, want 2", n)
	}
	if _, hit, _ := c.Get(ctx, "token"); !hit {
		t.Error("Clear with prefix removed an unrelated key")
	}

	n, _ = c.Clear(ctx, "")
	if n != 1 {
		t.Errorf("Clear all removed %d, want 1", n)
	}
}
