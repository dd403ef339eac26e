package signetsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// IssueToken requests a signed identity token for the given subject.
// A zero-value request is valid; the service fills in its defaults.
//
// When expiredKey is true the service signs with a key that is already
// past its validity window, generating one on demand if necessary. Such
// tokens always validate as key_expired_at_issuance regardless of TTL.
func (c *SDKClient) IssueToken(
	ctx context.Context,
	req IssueTokenRequest,
	expiredKey bool,
) (*TokenResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	path := "/v1/token"
	if expiredKey {
		path += "?expired=true"
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}

// ValidateToken submits a token for verification and returns the verdict.
// Structurally malformed tokens come back as an APIError with code
// "malformed_token"; every other outcome is a ValidateTokenResponse.
func (c *SDKClient) ValidateToken(ctx context.Context, token string) (*ValidateTokenResponse, error) {
	body, err := json.Marshal(ValidateTokenRequest{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/token/validate", bytes.NewReader(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var validateResp ValidateTokenResponse
	if err := decodeJSON(resp, &validateResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &validateResp, nil
}
