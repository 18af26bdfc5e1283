package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload: the user identifier plus the
// registered claims the token service fills in.
type Claims struct {
	jwt.RegisteredClaims
	UID int64 `json:"uid,omitempty"`
}

// UserID returns the user identifier bound to the token, falling back to the
// subject claim when the uid claim is absent.
func (c *Claims) UserID() int64 {
	if c.UID != 0 {
		return c.UID
	}
	if id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64); err == nil {
		return id
	}
	return 0
}

// Expires returns the expiration time, or the zero time for non-expiring
// tokens.
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued-at time.
func (c *Claims) Issued() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
