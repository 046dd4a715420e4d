package session

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/bookfair/pkg/api"
	"github.com/matzehuels/bookfair/pkg/cache"
)

// Store persists the current session in a key-value cache.
type Store struct {
	kv   cache.Cache
	keys cache.Keyer
}

// NewStore creates a store over kv. A nil keyer means [cache.DefaultKeyer].
func NewStore(kv cache.Cache, keys cache.Keyer) *Store {
	if keys == nil {
		keys = cache.NewDefaultKeyer()
	}
	return &Store{kv: kv, keys: keys}
}

// Get returns the current session, or nil when there is none or it has
// expired. An expired session is deleted.
//
// A token stored without session metadata is still honored: the user is
// recovered from the token's claims.
func (s *Store) Get(ctx context.Context) (*Session, error) {
	raw, ok, err := s.kv.Get(ctx, s.keys.TokenKey())
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	token := string(raw)

	var sess Session
	found, err := cache.GetJSON(ctx, s.kv, s.keys.SessionKey(), &sess)
	if err != nil || !found {
		sess = *fromToken(token)
	}
	sess.Token = token

	if sess.IsExpired() {
		if err := s.Delete(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &sess, nil
}

// Save stores sess, replacing any previous session.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired at %s", sess.ExpiresAt.Format(time.RFC3339))
	}
	if err := s.kv.Set(ctx, s.keys.TokenKey(), []byte(sess.Token), ttl); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := cache.SetJSON(ctx, s.kv, s.keys.SessionKey(), sess, ttl); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.keys.TokenKey()); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	if err := s.kv.Delete(ctx, s.keys.SessionKey()); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// fromToken rebuilds a session from the token alone.
func fromToken(token string) *Session {
	sess := New(token, &api.User{}, DefaultTTL)
	claims, err := api.ParseClaims(token)
	if err != nil {
		return sess
	}
	sess.User = &api.User{ID: claims.UserKey(), Email: claims.Email, Role: claims.Role}
	if exp := claims.Expiry(); !exp.IsZero() {
		sess.ExpiresAt = exp
	}
	if iat := claims.IssuedAt; iat != nil {
		sess.CreatedAt = iat.Time
	}
	return sess
}
