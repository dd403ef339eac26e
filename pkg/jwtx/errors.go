package jwtx

import "errors"

var (
	// ErrKeyGeneration means the crypto layer could not produce a keypair.
	// This is fatal: it signals a broken environment (no entropy, bad
	// parameters), so callers must not retry.
	ErrKeyGeneration = errors.New("jwtx: key generation failed")

	// ErrKeyNotFound is returned by exact kid lookups for kids the store
	// has never held.
	ErrKeyNotFound = errors.New("jwtx: key not found")

	// ErrNoValidKey means every key in the store has already expired and
	// the caller asked for a valid one. Signing must never silently fall
	// back to an expired key.
	ErrNoValidKey = errors.New("jwtx: no valid signing key")

	// ErrMalformedToken covers input that cannot even be decoded as a
	// token. Distinct from the verdicts: a well-formed-but-invalid token
	// is a normal result, undecodable bytes are an error.
	ErrMalformedToken = errors.New("jwtx: malformed token")
)
