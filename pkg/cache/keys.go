package cache

import "fmt"

// Keyer names the entries the client persists.
type Keyer interface {
	// TokenKey holds the raw bearer token.
	TokenKey() string
	// SessionKey holds the signed-in user and session timestamps.
	SessionKey() string
	// GenresKey holds a user's preferred genre names.
	GenresKey(userID string) string
	// ReservationsKey holds the stall ids a user reserved for an event.
	ReservationsKey(userID, eventID string) string
	// HTTPKey holds a cached backend response.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer produces the plain key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the plain key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) TokenKey() string   { return "token" }
func (DefaultKeyer) SessionKey() string { return "user" }

func (DefaultKeyer) GenresKey(userID string) string {
	return fmt.Sprintf("user_genres_%s", userID)
}

func (DefaultKeyer) ReservationsKey(userID, eventID string) string {
	return fmt.Sprintf("user_reservations_%s_%s", userID, eventID)
}

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// ScopedKeyer wraps a Keyer with a prefix. Shared backends (Redis, MongoDB)
// use it to keep one profile's keys apart from another's.
//
//	keys := NewScopedKeyer(NewDefaultKeyer(), "bookfair:alice:")
//	keys.TokenKey() // "bookfair:alice:token"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) TokenKey() string   { return k.prefix + k.inner.TokenKey() }
func (k *ScopedKeyer) SessionKey() string { return k.prefix + k.inner.SessionKey() }

func (k *ScopedKeyer) GenresKey(userID string) string {
	return k.prefix + k.inner.GenresKey(userID)
}

func (k *ScopedKeyer) ReservationsKey(userID, eventID string) string {
	return k.prefix + k.inner.ReservationsKey(userID, eventID)
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}
