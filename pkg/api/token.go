package api

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the backend puts in its access tokens.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserKey returns the user id as used in local storage keys: the userId
// claim when present, otherwise the subject.
func (c *Claims) UserKey() ID {
	if c.UserID != 0 {
		return ID(strconv.FormatInt(c.UserID, 10))
	}
	return ID(c.Subject)
}

// Expiry returns the exp claim, or the zero time when absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ParseClaims decodes a token's claims without verifying its signature.
// The client never holds the signing key; the backend verifies every
// request, so the claims are only used for display and local expiry.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
