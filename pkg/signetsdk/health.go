package signetsdk

import (
	"context"
	"net/http"
)

// Livez reports whether the service process is up.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/livez")
}

// Readyz reports whether the service holds at least one key and can
// serve traffic. An APIError with a 503 status means not ready.
func (c *SDKClient) Readyz(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/readyz")
}

func (c *SDKClient) getHealth(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var healthResp HealthResponse
	if err := decodeJSON(resp, &healthResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &healthResp, nil
}
