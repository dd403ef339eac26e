package jwtx

import (
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/signet/pkg/cryptox"
	"github.com/aussiebroadwan/signet/pkg/idx"
)

// AlgorithmRS256 is the only signing algorithm the store produces.
const AlgorithmRS256 = "RS256"

// DefaultExpiredSkew is how far in the past a deliberately expired key's
// window sits: [now-2*skew, now-skew). An hour keeps clock drift between
// the store and any consumer irrelevant.
const DefaultExpiredSkew = time.Hour

// KeyStoreOptions configures a KeyStore.
type KeyStoreOptions struct {
	// RSABits is the key size for generated keypairs.
	// Defaults to 2048 if not specified. Must be at least 2048.
	RSABits int

	// ExpiredSkew overrides DefaultExpiredSkew for deliberately expired
	// keys. Mostly useful in tests.
	ExpiredSkew time.Duration
}

// KeyStore owns every keypair the service has ever generated and is the
// single source of truth for which keys exist and which are exportable.
//
// Records are kept for the whole process lifetime. Expiry is view
// filtering, not deletion: PublicJWKS hides elapsed keys from consumers
// while GetKey still resolves them, so validation can say *why* a token is
// invalid instead of shrugging with "unknown key".
//
// Safe for concurrent use: reads take the shared lock, generation takes
// the exclusive one.
type KeyStore struct {
	mu      sync.RWMutex
	order   []string // kids in creation order
	records map[string]*KeyRecord

	bits int
	skew time.Duration
}

// NewKeyStore returns an empty KeyStore.
func NewKeyStore(opts KeyStoreOptions) *KeyStore {
	bits := opts.RSABits
	if bits == 0 {
		bits = cryptox.MinRSABits
	}

	skew := opts.ExpiredSkew
	if skew <= 0 {
		skew = DefaultExpiredSkew
	}

	return &KeyStore{
		records: make(map[string]*KeyRecord),
		bits:    bits,
		skew:    skew,
	}
}

// GenerateKey creates a new keypair valid from now for validFor and returns
// its kid. Generation failure wraps ErrKeyGeneration and must be treated as
// unrecoverable.
func (s *KeyStore) GenerateKey(validFor time.Duration) (string, error) {
	if validFor <= 0 {
		return "", fmt.Errorf("%w: non-positive validity %v", ErrKeyGeneration, validFor)
	}

	now := s.now()
	rec, err := s.newRecord(now, now.Add(validFor))
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.insertLocked(rec)
	s.mu.Unlock()

	return rec.Kid, nil
}

// GenerateExpiredKey creates a keypair whose window has already elapsed.
// This exists purely so callers can mint tokens that are guaranteed to fail
// validity checks; it has no side effect beyond the insertion.
func (s *KeyStore) GenerateExpiredKey() (string, error) {
	now := s.now()
	rec, err := s.newRecord(now.Add(-2*s.skew), now.Add(-s.skew))
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.insertLocked(rec)
	s.mu.Unlock()

	return rec.Kid, nil
}

// GetKey looks up a record by kid, expired or not.
func (s *KeyStore) GetKey(kid string) (*KeyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[kid]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, kid)
	}
	return rec, nil
}

// SelectSigningKey picks the key a new token should be signed with.
//
// The normal path returns the earliest-created key that is currently
// valid, so all issuers agree on the default key. With wantExpired it
// returns the most recently created elapsed key, generating one if the
// store has none. The check-and-generate happens under the write lock so
// two concurrent callers cannot both decide to generate.
//
// The second return reports whether the call generated a key on demand.
func (s *KeyStore) SelectSigningKey(wantExpired bool) (*KeyRecord, bool, error) {
	now := s.now()

	if !wantExpired {
		s.mu.RLock()
		defer s.mu.RUnlock()

		for _, kid := range s.order {
			if rec := s.records[kid]; rec.ValidAt(now) {
				return rec, false, nil
			}
		}
		return nil, false, ErrNoValidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.order) - 1; i >= 0; i-- {
		if rec := s.records[s.order[i]]; rec.ExpiredAt(now) {
			return rec, false, nil
		}
	}

	// No elapsed key yet. Generate one while still holding the lock;
	// keygen stalls other writers briefly but keeps the check-then-act
	// atomic so the store never grows duplicate expired keys.
	rec, err := s.newRecord(now.Add(-2*s.skew), now.Add(-s.skew))
	if err != nil {
		return nil, false, err
	}
	s.insertLocked(rec)
	return rec, true, nil
}

// PublicJWKS returns the public half of every key whose window contains
// at, in creation order. It never mutates the store: calling it twice with
// the same instant and no intervening generation yields identical sets.
func (s *KeyStore) PublicJWKS(at time.Time) JWKS {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jwks := JWKS{Keys: []JWK{}}
	for _, kid := range s.order {
		if rec := s.records[kid]; rec.ValidAt(at) {
			jwks.Keys = append(jwks.Keys, rec.PublicJWK())
		}
	}
	return jwks
}

// IsReady reports whether at least one key is currently valid for signing.
func (s *KeyStore) IsReady() bool {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, kid := range s.order {
		if s.records[kid].ValidAt(now) {
			return true
		}
	}
	return false
}

// Len returns how many keys the store holds, expired ones included.
func (s *KeyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// PublishableLen returns how many keys are inside their validity window
// right now, i.e. how many the published JWKS would contain.
func (s *KeyStore) PublishableLen() int {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, kid := range s.order {
		if s.records[kid].ValidAt(now) {
			n++
		}
	}
	return n
}

// now returns the wall clock truncated to whole seconds. JWT timestamps
// serialize at second precision, so key windows must be second-aligned or
// a token issued in the same second a key was created would carry an iat
// that lands just before the key's NotBefore.
func (s *KeyStore) now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// newRecord generates the keypair outside any lock; only insertion needs
// exclusivity.
func (s *KeyStore) newRecord(notBefore, notAfter time.Time) (*KeyRecord, error) {
	pemBytes, err := cryptox.GenerateRSAKey(s.bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	key, err := cryptox.ParseRSAPrivateKey(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	return &KeyRecord{
		Kid:       idx.New().String(),
		Alg:       AlgorithmRS256,
		NotBefore: notBefore,
		NotAfter:  notAfter,
		key:       key,
	}, nil
}

func (s *KeyStore) insertLocked(rec *KeyRecord) {
	s.records[rec.Kid] = rec
	s.order = append(s.order, rec.Kid)
}
