package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "token", []byte("abc"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "token")
	if err != nil || !hit {
		t.Fatalf("Get(token) = hit %v, err %v", hit, err)
	}
	if string(data) != "abc" {
		t.Errorf("Get(token) = %q, want %q", data, "abc")
	}

	if err := c.Set(ctx, "token", []byte("def"), time.Hour); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	data, _, _ = c.Get(ctx, "token")
	if string(data) != "def" {
		t.Errorf("after overwrite Get(token) = %q, want %q", data, "def")
	}

	if err := c.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "token"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "token"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"token", k.TokenKey(), "token"},
		{"session", k.SessionKey(), "user"},
		{"genres", k.GenresKey("7"), "user_genres_7"},
		{"reservations", k.ReservationsKey("7", "12"), "user_reservations_7_12"},
		{"http", k.HTTPKey("events", "upcoming"), "http:events:upcoming"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s key = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "bookfair:alice:")

	if got := scoped.TokenKey(); got != "bookfair:alice:token" {
		t.Errorf("TokenKey = %q", got)
	}
	if got := scoped.ReservationsKey("1", "2"); got != "bookfair:alice:user_reservations_1_2" {
		t.Errorf("ReservationsKey = %q", got)
	}
	if got := scoped.HTTPKey("genres", "all"); got != "bookfair:alice:http:genres:all" {
		t.Errorf("HTTPKey = %q", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	if key := scoped.GenresKey("u"); key != "p:user_genres_u" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	in := []string{"1-stall-0", "1-stall-4"}
	if err := SetJSON(ctx, c, "ids", in, 0); err != nil {
		t.Fatalf("SetJSON error: %v", err)
	}

	var out []string
	ok, err := GetJSON(ctx, c, "ids", &out)
	if err != nil || !ok {
		t.Fatalf("GetJSON = %v, %v", ok, err)
	}
	if len(out) != 2 || out[1] != "1-stall-4" {
		t.Errorf("GetJSON decoded %v", out)
	}

	ok, err = GetJSON(ctx, c, "absent", &out)
	if ok || err != nil {
		t.Errorf("GetJSON(absent) = %v, %v; want false, nil", ok, err)
	}

	_ = c.Set(ctx, "broken", []byte("{not json"), 0)
	_, err = GetJSON(ctx, c, "broken", &out)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("GetJSON(broken) error = %v, want ErrCorrupt", err)
	}
}
