package signetsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Signet token service. Every operation is
// unauthenticated; the service issues identity tokens, it doesn't guard
// them.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new token service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
