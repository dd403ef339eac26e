// Package service holds the token issuance and validation logic sitting
// between the HTTP layer and the key store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/signet/internal/signet/metrics"
	"github.com/aussiebroadwan/signet/pkg/jwtx"
	"github.com/aussiebroadwan/signet/pkg/slogx"
)

const (
	// DefaultSubject is used when a token request names no subject.
	DefaultSubject = "anonymous"

	// MaxSubjectLength caps the subject claim; anything longer bloats
	// every downstream token for no reason.
	MaxSubjectLength = 255

	// MaxTokenTTL caps requested token lifetimes.
	MaxTokenTTL = 24 * time.Hour
)

var (
	ErrInvalidSubject = errors.New("invalid_subject")
	ErrInvalidTTL     = errors.New("invalid_ttl")
)

// IssuedToken is the result of a successful issuance.
type IssuedToken struct {
	Token string
	Kid   string
}

type TokenService struct {
	Keys       *jwtx.KeyStore
	Verifier   *jwtx.Verifier
	Issuer     string
	DefaultTTL time.Duration
	Metrics    *metrics.Metrics
}

// Issue signs an identity token for subject with the given lifetime.
// A nil ttl takes the service default; an explicit zero is honoured and
// yields a token that is already expired the moment it exists. Negative
// or oversized values are rejected. When expiredKey is set the token is
// signed with a key whose validity window has already closed, generating
// one if none exists.
func (s *TokenService) Issue(
	ctx context.Context,
	subject string,
	ttl *time.Duration,
	expiredKey bool,
) (*IssuedToken, error) {
	l := slogx.FromContext(ctx)

	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultSubject
	}
	if len(subject) > MaxSubjectLength {
		return nil, ErrInvalidSubject
	}

	lifetime := s.DefaultTTL
	if ttl != nil {
		lifetime = *ttl
	}
	if lifetime < 0 || lifetime > MaxTokenTTL {
		return nil, ErrInvalidTTL
	}

	rec, generated, err := s.Keys.SelectSigningKey(expiredKey)
	if err != nil {
		return nil, err
	}
	if s.Metrics != nil && generated {
		s.Metrics.ObserveKeyGenerated(true)
	}

	claims := jwtx.NewIdentityClaims(subject, s.Issuer, lifetime, time.Now().UTC())
	token, err := rec.Sign(claims)
	if err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.ObserveIssue(expiredKey)
	}
	l.Info("token issued",
		slog.String("subject", subject),
		slog.String("kid", rec.Kid),
		slog.Duration("ttl", lifetime),
		slog.Bool("expired_key", expiredKey),
	)

	return &IssuedToken{Token: token, Kid: rec.Kid}, nil
}

// Validate verifies a token against the current clock and returns the
// verdict. Only structurally malformed tokens produce an error.
func (s *TokenService) Validate(ctx context.Context, token string) (*jwtx.Result, error) {
	return s.ValidateAt(ctx, token, time.Now().UTC())
}

// ValidateAt verifies a token as of the given instant.
func (s *TokenService) ValidateAt(ctx context.Context, token string, now time.Time) (*jwtx.Result, error) {
	l := slogx.FromContext(ctx)

	result, err := s.Verifier.VerifyAt(token, now)
	if err != nil {
		if errors.Is(err, jwtx.ErrMalformedToken) {
			l.Info("token validation rejected malformed token")
		}
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.ObserveValidation(result.Verdict)
	}
	l.Info("token validated",
		slog.String("verdict", string(result.Verdict)),
		slog.String("kid", result.Kid),
	)

	return &result, nil
}
