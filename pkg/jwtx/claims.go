package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default lifetime for issued identity tokens.
// Short-lived for security: callers wanting longer pass an explicit ttl.
const DefaultTokenTTL = 15 * time.Minute

// Claims are the identity-token claims. Deliberately minimal: the subject
// plus the registered timing claims are everything validation looks at.
type Claims struct {
	jwt.RegisteredClaims
}

// NewIdentityClaims builds minimally-correct claims for a subject.
// A zero ttl is legal and produces a token that expires the moment it is
// issued, which the boundary tests rely on.
func NewIdentityClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
