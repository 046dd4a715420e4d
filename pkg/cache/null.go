package cache

import (
	"context"
	"time"
)

// NullCache remembers nothing. Use it with --no-cache or when persistence
// should be disabled entirely.
type NullCache struct{}

// NewNullCache returns a store that drops every write.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)           { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                      { return nil }
func (*NullCache) Close() error                                              { return nil }

var _ Cache = (*NullCache)(nil)
