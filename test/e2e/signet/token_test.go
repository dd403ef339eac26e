package signet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/signet/pkg/signetsdk"
)

func TestTokenIssueAndValidate(t *testing.T) {
	baseURL, cleanup := setupSignetContainer(t)
	defer cleanup()

	client := signetsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	issued, err := client.IssueToken(ctx, signetsdk.IssueTokenRequest{
		Subject: "alice",
		TTL:     "10m",
	}, false)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.NotEmpty(t, issued.Kid)
	require.Len(t, strings.Split(issued.Token, "."), 3, "token should be a compact JWT")

	result, err := client.ValidateToken(ctx, issued.Token)
	require.NoError(t, err)
	require.Equal(t, signetsdk.VerdictValid, result.Verdict)
	require.Equal(t, "alice", result.Subject)
	require.Equal(t, issued.Kid, result.Kid)
}

func TestTokenDefaults(t *testing.T) {
	baseURL, cleanup := setupSignetContainer(t)
	defer cleanup()

	client := signetsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	issued, err := client.IssueToken(ctx, signetsdk.IssueTokenRequest{}, false)
	require.NoError(t, err)

	result, err := client.ValidateToken(ctx, issued.Token)
	require.NoError(t, err)
	require.Equal(t, signetsdk.VerdictValid, result.Verdict)
	require.Equal(t, "anonymous", result.Subject)
}

func TestTokenFromExpiredKey(t *testing.T) {
	baseURL, cleanup := setupSignetContainer(t)
	defer cleanup()

	client := signetsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	issued, err := client.IssueToken(ctx, signetsdk.IssueTokenRequest{
		Subject: "bob",
		TTL:     "10m",
	}, true)
	require.NoError(t, err)

	// The expired signing key must not appear in the published set.
	jwks, err := client.GetJWKS(ctx)
	require.NoError(t, err)
	for _, k := range jwks.Keys {
		require.NotEqual(t, issued.Kid, k.Kid)
	}

	// Yet the service still classifies the token by its key.
	result, err := client.ValidateToken(ctx, issued.Token)
	require.NoError(t, err)
	require.Equal(t, signetsdk.VerdictKeyExpiredAtIssuance, result.Verdict)
}

func TestTokenTampered(t *testing.T) {
	baseURL, cleanup := setupSignetContainer(t)
	defer cleanup()

	client := signetsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	issued, err := client.IssueToken(ctx, signetsdk.IssueTokenRequest{Subject: "carol"}, false)
	require.NoError(t, err)

	// Swap one signature character for a different valid base64url one.
	sig := []byte(issued.Token)
	last := len(sig) - 1
	if sig[last] == 'A' {
		sig[last] = 'B'
	} else {
		sig[last] = 'A'
	}

	result, err := client.ValidateToken(ctx, string(sig))
	require.NoError(t, err)
	require.Equal(t, signetsdk.VerdictSignatureMismatch, result.Verdict)
}

func TestTokenMalformed(t *testing.T) {
	baseURL, cleanup := setupSignetContainer(t)
	defer cleanup()

	client := signetsdk.NewSDKClient(baseURL)

	_, err := client.ValidateToken(t.Context(), "this is not a token")
	require.Error(t, err)

	var apiErr *signetsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "malformed_token", apiErr.Code)
	require.Equal(t, 400, apiErr.StatusCode)
}

func TestTokenBadRequest(t *testing.T) {
	baseURL, cleanup := setupSignetContainer(t)
	defer cleanup()

	client := signetsdk.NewSDKClient(baseURL)

	_, err := client.IssueToken(t.Context(), signetsdk.IssueTokenRequest{TTL: "not-a-duration"}, false)
	require.Error(t, err)

	var apiErr *signetsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "invalid_request", apiErr.Code)
}
