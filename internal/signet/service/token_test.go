package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/signet/internal/signet/metrics"
	"github.com/aussiebroadwan/signet/pkg/jwtx"
)

func newTestService(t *testing.T) *TokenService {
	t.Helper()

	keys := jwtx.NewKeyStore(jwtx.KeyStoreOptions{})
	return &TokenService{
		Keys:       keys,
		Verifier:   jwtx.NewVerifier(keys),
		Issuer:     "signet-test",
		DefaultTTL: jwtx.DefaultTokenTTL,
	}
}

func ttlOf(d time.Duration) *time.Duration { return &d }

func TestIssueAndValidateRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Keys.GenerateKey(24 * time.Hour)
	require.NoError(t, err)

	issued, err := svc.Issue(ctx, "alice", ttlOf(10*time.Minute), false)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.NotEmpty(t, issued.Kid)

	result, err := svc.Validate(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, jwtx.VerdictValid, result.Verdict)
	assert.Equal(t, "alice", result.Subject)
	assert.Equal(t, issued.Kid, result.Kid)
}

func TestIssueWithExpiredKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Keys.GenerateKey(24 * time.Hour)
	require.NoError(t, err)

	issued, err := svc.Issue(ctx, "bob", ttlOf(10*time.Minute), true)
	require.NoError(t, err)

	// The expired key never appears in the published key set.
	jwks := svc.Keys.PublicJWKS(time.Now().UTC())
	for _, k := range jwks.Keys {
		assert.NotEqual(t, issued.Kid, k.Kid)
	}

	// The key itself classifies the token, not its lifetime.
	result, err := svc.Validate(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, jwtx.VerdictKeyExpiredAtIssuance, result.Verdict)
}

func TestIssueDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Keys.GenerateKey(time.Hour)
	require.NoError(t, err)

	issued, err := svc.Issue(ctx, "   ", nil, false)
	require.NoError(t, err)

	result, err := svc.Validate(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, jwtx.VerdictValid, result.Verdict)
	assert.Equal(t, DefaultSubject, result.Subject)
}

func TestIssueExplicitZeroTTL(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Keys.GenerateKey(time.Hour)
	require.NoError(t, err)

	// An explicit zero is not "use the default": it asks for a token
	// whose exp equals its iat.
	issued, err := svc.Issue(ctx, "erin", ttlOf(0), false)
	require.NoError(t, err)

	result, err := svc.Validate(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, jwtx.VerdictTokenExpired, result.Verdict)

	// And at any later instant it stays expired.
	result, err = svc.ValidateAt(ctx, issued.Token, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, jwtx.VerdictTokenExpired, result.Verdict)
}

func TestIssueRejectsBadTTL(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Keys.GenerateKey(time.Hour)
	require.NoError(t, err)

	_, err = svc.Issue(ctx, "carol", ttlOf(-time.Minute), false)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = svc.Issue(ctx, "carol", ttlOf(MaxTokenTTL+time.Second), false)
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestIssueRejectsOversizedSubject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Keys.GenerateKey(time.Hour)
	require.NoError(t, err)

	_, err = svc.Issue(ctx, strings.Repeat("a", MaxSubjectLength+1), nil, false)
	assert.ErrorIs(t, err, ErrInvalidSubject)

	_, err = svc.Issue(ctx, strings.Repeat("a", MaxSubjectLength), nil, false)
	assert.NoError(t, err)
}

func TestIssueWithoutKeys(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Issue(context.Background(), "dave", ttlOf(time.Minute), false)
	assert.ErrorIs(t, err, jwtx.ErrNoValidKey)
}

func TestIssueCountsGeneratedKeysOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	svc.Metrics = metrics.New(prometheus.NewRegistry(), svc.Keys)

	_, err := svc.Keys.GenerateKey(time.Hour)
	require.NoError(t, err)

	// First expired issuance generates the key, the second reuses it.
	_, err = svc.Issue(ctx, "frank", nil, true)
	require.NoError(t, err)
	_, err = svc.Issue(ctx, "frank", nil, true)
	require.NoError(t, err)

	counter := svc.Metrics.KeysGenerated.WithLabelValues(metrics.KeyClassExpired)
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestValidateMalformed(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Validate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, jwtx.ErrMalformedToken)
}
