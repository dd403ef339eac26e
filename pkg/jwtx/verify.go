package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verdict classifies the outcome of validating a token. A verdict is a
// normal result, never an error: invalid tokens are expected traffic and
// must not abort a caller's control flow.
type Verdict string

const (
	// VerdictValid: signature checks out, the token hasn't expired, and
	// the signing key's window covered the moment of issuance.
	VerdictValid Verdict = "valid"

	// VerdictSignatureMismatch: the recomputed signature differs, i.e. the
	// token was tampered with or signed by different key material.
	VerdictSignatureMismatch Verdict = "signature_mismatch"

	// VerdictTokenExpired: the payload's exp claim has elapsed.
	VerdictTokenExpired Verdict = "token_expired"

	// VerdictKeyExpiredAtIssuance: the signing key's own window did not
	// cover the token's iat. Fixed at issuance, time cannot change it.
	VerdictKeyExpiredAtIssuance Verdict = "key_expired_at_issuance"

	// VerdictUnknownKey: the header names a kid the store has never held,
	// which means a replay against the wrong service or tampering.
	VerdictUnknownKey Verdict = "unknown_key"
)

// Result is the classified outcome of a validation.
type Result struct {
	Subject string
	Kid     string
	Verdict Verdict
}

// Valid is a convenience for the only happy verdict.
func (r Result) Valid() bool { return r.Verdict == VerdictValid }

// Verifier validates tokens against a KeyStore. Lookup goes through the
// unfiltered store, expired keys included, so a verdict can explain the
// failure rather than degrade to "unknown key".
type Verifier struct {
	keys *KeyStore
}

// NewVerifier returns a Verifier backed by the given store.
func NewVerifier(keys *KeyStore) *Verifier {
	return &Verifier{keys: keys}
}

// Verify classifies a token against the current wall clock.
func (v *Verifier) Verify(tokenStr string) (Result, error) {
	return v.VerifyAt(tokenStr, time.Now().UTC())
}

// VerifyAt classifies a token as of the given instant.
//
// The only error paths are undecodable input (ErrMalformedToken) and
// internal failures; every well-formed token produces a verdict. Claim
// validation is done by hand below, not by the parser, because expiry here
// is a verdict rather than a parse failure.
func (v *Verifier) VerifyAt(tokenStr string, now time.Time) (Result, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var kid string
	var rec *KeyRecord

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		k, _ := t.Header["kid"].(string)
		if k == "" {
			return nil, fmt.Errorf("%w: missing kid header", ErrKeyNotFound)
		}
		kid = k

		r, err := v.keys.GetKey(k)
		if err != nil {
			return nil, err
		}
		rec = r
		return r.publicKey(), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Result{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		case errors.Is(err, ErrKeyNotFound):
			return Result{Kid: kid, Verdict: VerdictUnknownKey}, nil
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Result{Kid: kid, Verdict: VerdictSignatureMismatch}, nil
		default:
			return Result{}, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Result{}, errors.New("jwtx: invalid token claims")
	}

	res := Result{Subject: claims.Subject, Kid: kid}

	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	switch {
	// Key-window coverage is checked before token expiry: a token forced
	// onto an expired key classifies the same way whatever its ttl.
	case !rec.ValidAt(issuedAt):
		res.Verdict = VerdictKeyExpiredAtIssuance
	case claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time):
		res.Verdict = VerdictTokenExpired
	default:
		res.Verdict = VerdictValid
	}

	return res, nil
}
