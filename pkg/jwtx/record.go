package jwtx

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// KeyRecord is a single signing keypair with its validity window. Records
// are immutable once created and are never removed from the store: expiry
// only hides a key from the published JWKS, so a token signed under an
// expired key can still be resolved and explained during validation.
type KeyRecord struct {
	Kid string // ULID, unique within the store, sortable by creation
	Alg string // always "RS256"

	// Validity window, half-open [NotBefore, NotAfter). A key is valid at
	// time t iff NotBefore <= t < NotAfter.
	NotBefore time.Time
	NotAfter  time.Time

	// The private half stays unexported. It is owned by the KeyStore and
	// never leaves this package.
	key *rsa.PrivateKey
}

// ValidAt reports whether the key's window contains t.
func (r *KeyRecord) ValidAt(t time.Time) bool {
	return !t.Before(r.NotBefore) && t.Before(r.NotAfter)
}

// ExpiredAt reports whether the key's window has already elapsed at t.
func (r *KeyRecord) ExpiredAt(t time.Time) bool {
	return !t.Before(r.NotAfter)
}

// Window returns the length of the validity window.
func (r *KeyRecord) Window() time.Duration {
	return r.NotAfter.Sub(r.NotBefore)
}

// Sign produces a signed RS256 token over the claims, stamping the key's
// kid into the header so verifiers can resolve the public half.
func (r *KeyRecord) Sign(claims Claims) (string, error) {
	if r.key == nil {
		return "", errors.New("jwtx: nil RSA key")
	}

	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = r.Kid
	return t.SignedString(r.key)
}

// PublicJWK returns the exportable public half for JWKS publishing.
func (r *KeyRecord) PublicJWK() JWK {
	return NewRSAJWK(r.Kid, "sig", r.Alg, &r.key.PublicKey)
}

// publicKey hands the raw public half to the verifier.
func (r *KeyRecord) publicKey() *rsa.PublicKey {
	return &r.key.PublicKey
}
