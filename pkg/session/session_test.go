package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/matzehuels/bookfair/pkg/api"
	"github.com/matzehuels/bookfair/pkg/cache"
)

func testToken(t *testing.T, userID int64, exp time.Time) string {
	t.Helper()
	claims := api.Claims{
		UserID: userID,
		Email:  "vendor@example.com",
		Role:   "VENDOR",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("SignedString() error: %v", err)
	}
	return tok
}

func TestNewSession(t *testing.T) {
	user := &api.User{ID: "7", FullName: "Nimal"}
	sess := New("tok", user, time.Hour)

	if sess.ID == "" {
		t.Error("New() should assign an id")
	}
	if sess.IsExpired() {
		t.Error("fresh session should not be expired")
	}
	if sess.UserID() != "7" {
		t.Errorf("UserID() = %q, want 7", sess.UserID())
	}
	if New("tok", user, time.Hour).ID == sess.ID {
		t.Error("session ids should be unique")
	}

	var nilSess *Session
	if nilSess.UserID() != "" {
		t.Error("nil session UserID() should be empty")
	}
}

func TestFromAuthUsesExpClaim(t *testing.T) {
	exp := time.Now().Add(3 * time.Hour).Truncate(time.Second)
	res := &api.AuthResult{Token: testToken(t, 7, exp)}

	sess := FromAuth(res)
	if !sess.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, exp)
	}
	if sess.UserID() != "7" {
		t.Errorf("UserID() = %q, want 7", sess.UserID())
	}

	plain := FromAuth(&api.AuthResult{Token: "opaque", User: api.User{ID: "9"}})
	if d := time.Until(plain.ExpiresAt); d < DefaultTTL-time.Minute || d > DefaultTTL {
		t.Errorf("opaque token expiry in %v, want about %v", d, DefaultTTL)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemory()
	keys := cache.NewDefaultKeyer()
	store := NewStore(kv, keys)

	sess, err := store.Get(ctx)
	if err != nil || sess != nil {
		t.Fatalf("Get() on empty store = %v, %v; want nil, nil", sess, err)
	}

	saved := New("tok-1", &api.User{ID: "7", FullName: "Nimal"}, time.Hour)
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	raw, ok, _ := kv.Get(ctx, "token")
	if !ok || string(raw) != "tok-1" {
		t.Errorf("token key = %q, want raw token", raw)
	}
	if _, ok, _ := kv.Get(ctx, "user"); !ok {
		t.Error("user key should hold session metadata")
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil || got.Token != "tok-1" || got.User.DisplayName() != "Nimal" || got.ID != saved.ID {
		t.Errorf("Get() = %+v, want saved session", got)
	}

	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if got, _ := store.Get(ctx); got != nil {
		t.Error("Get() after Delete() should be nil")
	}
	if err := store.Delete(ctx); err != nil {
		t.Errorf("second Delete() error: %v", err)
	}
}

func TestStoreDeletesExpired(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemory()
	store := NewStore(kv, nil)

	expired := New("tok", &api.User{ID: "1"}, time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	// Written directly: Save refuses sessions that are already expired.
	kv.Set(ctx, "token", []byte("tok"), 0)
	cache.SetJSON(ctx, kv, "user", expired, 0)

	got, err := store.Get(ctx)
	if err != nil || got != nil {
		t.Fatalf("Get() = %v, %v; want nil, nil for expired session", got, err)
	}
	if kv.Len() != 0 {
		t.Errorf("expired session left %d entries behind", kv.Len())
	}

	if err := store.Save(ctx, expired); err == nil {
		t.Error("Save() of an expired session should fail")
	}
}

func TestStoreTokenOnly(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemory()
	store := NewStore(kv, nil)

	tok := testToken(t, 12, time.Now().Add(time.Hour))
	kv.Set(ctx, "token", []byte(tok), 0)

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil || got.UserID() != "12" || got.User.Email != "vendor@example.com" {
		t.Errorf("Get() = %+v, want user from claims", got)
	}
}

func TestStoreScopedKeys(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemory()
	alice := NewStore(kv, cache.NewScopedKeyer(nil, "alice:"))
	bob := NewStore(kv, cache.NewScopedKeyer(nil, "bob:"))

	if err := alice.Save(ctx, New("a", &api.User{ID: "1"}, time.Hour)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got, _ := bob.Get(ctx); got != nil {
		t.Error("scoped stores should not share sessions")
	}
	if got, _ := alice.Get(ctx); got == nil || got.Token != "a" {
		t.Errorf("alice.Get() = %+v", got)
	}
}
