package cache

import (
	"context"
	"os"
	"testing"
)

// Remote backends run only when a server is configured:
//
//	BOOKFAIR_TEST_REDIS=localhost:6379 BOOKFAIR_TEST_MONGO=mongodb://localhost:27017 go test ./pkg/cache

func TestRedis(t *testing.T) {
	addr := os.Getenv("BOOKFAIR_TEST_REDIS")
	if addr == "" {
		t.Skip("BOOKFAIR_TEST_REDIS not set")
	}
	r, err := NewRedis(context.Background(), RedisOptions{Addr: addr, DB: 15})
	if err != nil {
		t.Fatalf("NewRedis error: %v", err)
	}
	defer r.Close()
	exerciseStore(t, r)
}

func TestRedisUnavailable(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed port")
	}
	_, err := NewRedis(context.Background(), RedisOptions{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Fatal("NewRedis on a closed port should fail")
	}
}

func TestMongo(t *testing.T) {
	uri := os.Getenv("BOOKFAIR_TEST_MONGO")
	if uri == "" {
		t.Skip("BOOKFAIR_TEST_MONGO not set")
	}
	m, err := NewMongo(context.Background(), MongoOptions{URI: uri, Database: "bookfair_test"})
	if err != nil {
		t.Fatalf("NewMongo error: %v", err)
	}
	defer m.Close()
	exerciseStore(t, m)
}
