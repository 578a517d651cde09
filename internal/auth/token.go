package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// The bearer credential is opaque to this client: the backend signs and
// validates it. When it happens to be a JWT we can still read the expiry
// claim without verifying the signature, which lets callers drop a token
// that is already dead instead of burning a round trip on a guaranteed 401.

// Expiry returns the token's expiration time when the token is a parseable
// JWT carrying an exp claim. The second result is false for opaque tokens.
func Expiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// IsExpired reports whether the token is known to be expired. Opaque or
// unparseable tokens are never reported expired; only the backend can judge
// those.
func IsExpired(token string, now time.Time) bool {
	exp, ok := Expiry(token)
	if !ok {
		return false
	}
	return now.After(exp)
}
