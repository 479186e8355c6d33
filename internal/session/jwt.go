package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim out of a JWT without verifying the
// signature; the backend remains the authority on validity. Opaque tokens
// and JWTs without exp return the zero time.
func TokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// TokenExpired reports whether the token carries an exp claim in the past.
// Tokens without a readable expiry are never reported as expired here; the
// backend's 401 is the real signal.
func TokenExpired(token string, now time.Time) bool {
	exp := TokenExpiry(token)
	if exp.IsZero() {
		return false
	}
	return exp.Before(now)
}
