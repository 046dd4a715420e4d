// Package session keeps the signed-in user between CLI runs.
//
// A session is the backend's bearer token plus the account it belongs to.
// Both live in the injected [cache.Cache]: the raw token under the keyer's
// token key, and the session metadata (user, created and expiry times) as
// JSON under the session key. Any cache backend works, so a profile stored
// in Redis or MongoDB follows the user across machines.
//
// # Usage
//
//	store := session.NewStore(kv, cache.NewDefaultKeyer())
//
//	// After login
//	sess := session.FromAuth(res)
//	if err := store.Save(ctx, sess); err != nil {
//	    return err
//	}
//
//	// Later
//	sess, err := store.Get(ctx)
//	if sess == nil {
//	    // Not signed in, or the session expired
//	}
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bookfair/pkg/api"
)

// DefaultTTL is the session lifetime when the token carries no exp claim.
const DefaultTTL = 30 * 24 * time.Hour

// Session stores the signed-in user.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	User      *api.User `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// UserID returns the id used in per-user storage keys, or "" when there is
// no user.
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID.String()
}

// New creates a session for token and user that expires after ttl.
func New(token string, user *api.User, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// FromAuth creates a session from a login or registration result. The
// expiry is taken from the token's exp claim when present.
func FromAuth(res *api.AuthResult) *Session {
	sess := New(res.Token, res.Account(), DefaultTTL)
	if claims, err := api.ParseClaims(res.Token); err == nil {
		if exp := claims.Expiry(); !exp.IsZero() {
			sess.ExpiresAt = exp
		}
	}
	return sess
}
