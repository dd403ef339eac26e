package signetsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// GetJWKS fetches the JSON Web Key Set as published right now. Only keys
// inside their validity window appear; expired keys are filtered out of
// the view even though the service can still resolve them internally.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	return c.getJWKS(ctx, "/.well-known/jwks.json")
}

// GetJWKSAt fetches the key set as it would appear at the given instant,
// past or future.
func (c *SDKClient) GetJWKSAt(ctx context.Context, at time.Time) (*JWKSResponse, error) {
	q := url.Values{"at": []string{at.Format(time.RFC3339)}}
	return c.getJWKS(ctx, "/.well-known/jwks.json?"+q.Encode())
}

func (c *SDKClient) getJWKS(ctx context.Context, path string) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var jwksResp JWKSResponse
	if err := decodeJSON(resp, &jwksResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &jwksResp, nil
}
